// Package sifetl contains the core components of sifetl, a small toolkit for loading
// directories of delimited, JSON and parquet files into in-memory DataFrames.
// This root package defines the types shared by the engine (Schemas, Rows, Partitions,
// DataSources and their Parsers) and is a good overview of how a load is put together.
//
// The usual entry point is the loader package, which resolves a path to a File Set
// and asks a session to parse it:
//
//	cfg, err := config.Load("json/sales.json")
//	sess, err := session.Start(cfg, logging.New(os.Stderr, logging.InfoLevel))
//	defer sess.Stop()
//	df, err := loader.ImportDataFromPath(ctx, sess, "data", "")
package sifetl
