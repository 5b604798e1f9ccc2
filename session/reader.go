package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"github.com/hpetrov29/sifetl"
	"github.com/hpetrov29/sifetl/dataframe"
	"github.com/hpetrov29/sifetl/datasource"
	"github.com/hpetrov29/sifetl/datasource/file"
	"github.com/hpetrov29/sifetl/datasource/parser/dsv"
	"github.com/hpetrov29/sifetl/datasource/parser/jsonl"
	"github.com/hpetrov29/sifetl/datasource/parser/parquet"
	"github.com/hpetrov29/sifetl/errors"
	"github.com/hpetrov29/sifetl/internal/pcache"
	"github.com/hpetrov29/sifetl/internal/stats"
	"github.com/hpetrov29/sifetl/internal/util"
	"github.com/hpetrov29/sifetl/partition"
	"golang.org/x/sync/semaphore"
)

// Formats understood by a DataFrameReader
const (
	CSVFormat     = "csv"
	JSONFormat    = "json"
	ParquetFormat = "parquet"
)

// Options understood by a DataFrameReader. Keys are case-insensitive.
const (
	HeaderOption      = "header"      // csv: "true" if the first line of each file holds column names. Defaults to "false"
	ModeOption        = "mode"        // csv, json: PERMISSIVE (default), DROPMALFORMED or FAILFAST
	InferSchemaOption = "inferschema" // csv: "true" to infer column types. Defaults to the Session's InferSchema option
	DelimiterOption   = "delimiter"   // csv: a single-character column delimiter. Defaults to ","
	NullValueOption   = "nullvalue"   // csv: a string which represents null values
	CommentOption     = "comment"     // csv: lines beginning with this single character are skipped
)

// DataFrameReader loads File Sets into DataFrames, in a particular format
type DataFrameReader struct {
	sess    *Session
	format  string
	options map[string]string
}

// Read returns a DataFrameReader for this Session
func (s *Session) Read() *DataFrameReader {
	return &DataFrameReader{sess: s, options: make(map[string]string)}
}

// Format sets the Format Tag files are loaded as
func (r *DataFrameReader) Format(format string) *DataFrameReader {
	r.format = format
	return r
}

// Option sets a reader option
func (r *DataFrameReader) Option(key string, value string) *DataFrameReader {
	r.options[strings.ToLower(key)] = value
	return r
}

func (r *DataFrameReader) boolOption(key string, defaultValue bool) (bool, error) {
	value, ok := r.options[key]
	if !ok {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, &errors.ConfigError{Key: key, Err: err}
	}
	return b, nil
}

func (r *DataFrameReader) runeOption(key string) (rune, error) {
	value, ok := r.options[key]
	if !ok || len(value) == 0 {
		return 0, nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, &errors.ConfigError{Key: key, Err: fmt.Errorf("%q must be a single character", value)}
	}
	c, _ := utf8.DecodeRuneInString(value)
	return c, nil
}

func (r *DataFrameReader) modeOption() (sifetl.ParseMode, error) {
	value, ok := r.options[ModeOption]
	if !ok {
		return sifetl.PermissiveMode, nil
	}
	mode, err := sifetl.ParseParseMode(value)
	if err != nil {
		return "", &errors.ConfigError{Key: ModeOption, Err: err}
	}
	return mode, nil
}

// parser builds the DataSourceParser for this reader's format and options
func (r *DataFrameReader) parser(path string) (sifetl.DataSourceParser, error) {
	opts := r.sess.opts
	switch r.format {
	case CSVFormat:
		conf := &dsv.ParserConf{PartitionSize: opts.PartitionSize, NilValue: r.options[NullValueOption]}
		var err error
		if conf.Header, err = r.boolOption(HeaderOption, false); err != nil {
			return nil, err
		}
		if conf.InferSchema, err = r.boolOption(InferSchemaOption, opts.InferSchema); err != nil {
			return nil, err
		}
		if conf.Mode, err = r.modeOption(); err != nil {
			return nil, err
		}
		if conf.Delimiter, err = r.runeOption(DelimiterOption); err != nil {
			return nil, err
		}
		if conf.Comment, err = r.runeOption(CommentOption); err != nil {
			return nil, err
		}
		if conf.Comment != 0 && conf.Comment == conf.Delimiter {
			return nil, &errors.ConfigError{Key: CommentOption, Err: fmt.Errorf("must differ from the delimiter")}
		}
		return dsv.CreateParser(conf), nil
	case JSONFormat:
		mode, err := r.modeOption()
		if err != nil {
			return nil, err
		}
		return jsonl.CreateParser(&jsonl.ParserConf{PartitionSize: opts.PartitionSize, Mode: mode}), nil
	case ParquetFormat:
		return parquet.CreateParser(&parquet.ParserConf{PartitionSize: opts.PartitionSize}), nil
	default:
		return nil, &errors.UnsupportedFormatError{Path: path, Format: r.format}
	}
}

// Load loads a File Set into a DataFrame. The schema is derived from the files first;
// the files are then parsed concurrently, up to the Session's parallelism at a time.
// Cancelling ctx stops further files from being scheduled. Failures to read or parse
// any file are aggregated into a single EngineError.
func (r *DataFrameReader) Load(ctx context.Context, files ...string) (*dataframe.DataFrame, error) {
	s := r.sess
	op := fmt.Sprintf("load %s", r.format)
	if s.IsStopped() {
		return nil, &errors.EngineError{Op: op, Err: fmt.Errorf("session %s is stopped", s.id)}
	}
	path := ""
	if len(files) > 0 {
		path = files[0]
	}
	parser, err := r.parser(path)
	if err != nil {
		return nil, err
	}

	ls := &stats.LoadStatistics{}
	ls.Start()
	source := file.CreateDataSource(files, s.logger)
	s.logger.Debug("inferring schema", "format", r.format, "files", len(files))
	schema, err := datasource.InferSchema(source, parser)
	if err != nil {
		return nil, &errors.EngineError{Op: op, Err: err}
	}
	ls.EndSchemaInference()

	cache, err := pcache.NewLRU(&pcache.LRUConfig{
		Size:       s.opts.NumInMemoryPartitions,
		DiskPath:   s.opts.TempDir,
		Schema:     schema,
		Serializer: partition.NewLZ4PartitionSerializer(),
		Logger:     s.logger,
	})
	if err != nil {
		return nil, &errors.EngineError{Op: op, Err: err}
	}
	if err := s.track(cache); err != nil {
		cache.Destroy()
		return nil, &errors.EngineError{Op: op, Err: err}
	}
	ids, err := r.loadAll(ctx, source, parser, schema, cache, ls)
	ls.Finish()
	if err != nil {
		cache.Destroy()
		return nil, &errors.EngineError{Op: op, Err: err}
	}
	if n := ls.GetNumMalformedRecords(); n > 0 {
		s.logger.Warn("encountered malformed records", "format", r.format, "count", n)
	}
	s.logger.Info("loaded files", "format", r.format, "files", len(files), "partitions", ls.GetNumPartitionsProcessed(), "rows", ls.GetNumRowsProcessed(), "runtime", ls.GetRuntime())
	return dataframe.New(&dataframe.Conf{
		Schema:       schema,
		Files:        files,
		Format:       r.format,
		PartitionIDs: ids,
		Cache:        cache,
		Stats:        ls,
	}), nil
}

// loadAll parses every file of source into cache, returning the IDs of the loaded Partitions in file order
func (r *DataFrameReader) loadAll(ctx context.Context, source sifetl.DataSource, parser sifetl.DataSourceParser, schema sifetl.Schema, cache pcache.PartitionCache, ls *stats.LoadStatistics) ([]string, error) {
	pm, err := source.Analyze()
	if err != nil {
		return nil, err
	}
	var loaders []sifetl.PartitionLoader
	for pm.HasNext() {
		loaders = append(loaders, pm.Next())
	}

	perFile := make([][]string, len(loaders))
	var wg sync.WaitGroup
	var errLock sync.Mutex
	var result *multierror.Error
	sem := semaphore.NewWeighted(int64(r.sess.parallelism))
	for i, pl := range loaders {
		err := ctx.Err()
		if err == nil {
			err = sem.Acquire(ctx, 1)
		}
		if err != nil {
			errLock.Lock()
			result = multierror.Append(result, err)
			errLock.Unlock()
			break
		}
		wg.Add(1)
		go func(i int, pl sifetl.PartitionLoader) {
			defer wg.Done()
			defer sem.Release(1)
			var ids []string
			err := util.SafeFileOperation(pl.Path(), func() (err error) {
				ids, err = r.loadFile(pl, parser, schema, cache, ls)
				return
			})
			if err != nil {
				errLock.Lock()
				result = multierror.Append(result, err)
				errLock.Unlock()
				return
			}
			perFile[i] = ids
		}(i, pl)
	}
	wg.Wait()
	if result != nil {
		result.ErrorFormat = util.FormatMultiError
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	var ids []string
	for _, fileIDs := range perFile {
		ids = append(ids, fileIDs...)
	}
	return ids, nil
}

// loadFile parses a single file into cache
func (r *DataFrameReader) loadFile(pl sifetl.PartitionLoader, parser sifetl.DataSourceParser, schema sifetl.Schema, cache pcache.PartitionCache, ls *stats.LoadStatistics) ([]string, error) {
	started := time.Now()
	r.sess.logger.Trace("loading file", "path", pl.Path())
	it, err := pl.Load(parser, schema)
	if err != nil {
		return nil, err
	}
	// releases the file on early return or panic
	defer it.Close()
	var ids []string
	numRows := 0
	for it.HasNextPartition() {
		part, err := it.NextPartition()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pl.Path(), err)
		}
		if part.GetNumRows() == 0 {
			continue
		}
		if err := cache.Add(part); err != nil {
			return nil, err
		}
		ids = append(ids, part.ID())
		numRows += part.GetNumRows()
	}
	numMalformed := 0
	if counter, ok := it.(sifetl.MalformedRecordCounter); ok {
		numMalformed = counter.NumMalformedRecords()
	}
	ls.EndFile(pl.Path(), started, len(ids), numRows, numMalformed)
	r.sess.logger.Debug("loaded file", "path", pl.Path(), "partitions", len(ids), "rows", numRows, "malformed", numMalformed)
	return ids, nil
}
