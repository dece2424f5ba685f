package inbox

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Status is the outcome of importing one inbox file.
type Status string

const (
	Imported Status = "imported"
	Failed   Status = "failed"
)

// Entry is one row in the import log.
type Entry struct {
	Timestamp    time.Time
	File         string
	Bank         string
	Transactions int
	Status       Status
	Error        string
}

// LogHeader is the CSV header of processed/import-log.csv.
const LogHeader = "timestamp,file,bank,transactions,status,error"

// LogFile is the import log's name inside the processed directory.
const LogFile = "import-log.csv"

const (
	numFields       = 6
	colTimestamp    = 0
	colFile         = 1
	colBank         = 2
	colTransactions = 3
	colStatus       = 4
	colError        = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colFile] = e.File
	row[colBank] = e.Bank
	row[colTransactions] = strconv.Itoa(e.Transactions)
	row[colStatus] = string(e.Status)
	row[colError] = e.Error
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	n, err := strconv.Atoi(record[colTransactions])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing transaction count %q: %w", record[colTransactions], err)
	}

	return Entry{
		Timestamp:    ts,
		File:         record[colFile],
		Bank:         record[colBank],
		Transactions: n,
		Status:       Status(record[colStatus]),
		Error:        record[colError],
	}, nil
}

// AppendLog writes entries to <dir>/processed/import-log.csv, creating the file and
// header if needed.
func AppendLog(dir string, entries []Entry) (err error) {
	logDir := filepath.Join(dir, ProcessedDir)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	path := filepath.Join(logDir, LogFile)
	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing import log: %w", cerr)
		}
	}()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(LogHeader, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadLog returns all entries from <dir>/processed/import-log.csv, or nil if there is
// no log yet.
func ReadLog(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, ProcessedDir, LogFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
