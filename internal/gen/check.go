package gen

import (
	"bytes"
	"context"

	"modelkit/internal/common"
)

// Status is the state of a generated file on disk relative to a fresh
// generation.
type Status int

const (
	// StatusUpToDate means the file matches a fresh generation.
	StatusUpToDate Status = iota
	// StatusMissing means no file exists at the output path.
	StatusMissing
	// StatusStale means the file is intact but differs from a fresh
	// generation.
	StatusStale
	// StatusModified means the file no longer matches its own fingerprint.
	StatusModified
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusUpToDate:
		return "up to date"
	case StatusMissing:
		return "missing"
	case StatusStale:
		return "stale"
	case StatusModified:
		return "modified"
	default:
		return common.UnknownStr
	}
}

// CheckResult reports the status of one generated file.
type CheckResult struct {
	URL    string
	Status Status
}

// OK reports whether the file needs no regeneration.
func (r CheckResult) OK() bool {
	return r.Status == StatusUpToDate
}

// Check compares the stored file with a fresh generation. A file whose body
// no longer matches its recorded fingerprint was edited by hand and is
// reported as modified; an intact file with different content is stale.
func (w *Writer) Check(ctx context.Context, file *GeneratedFile) (CheckResult, error) {
	res := CheckResult{URL: w.URL(file)}

	current, exists, err := w.Read(ctx, file)
	if err != nil {
		return res, err
	}

	switch {
	case !exists:
		res.Status = StatusMissing
	case bytes.Equal(current, file.Content):
		res.Status = StatusUpToDate
	default:
		intact, err := Verify(current)
		if err != nil {
			return res, err
		}

		if intact {
			res.Status = StatusStale
		} else {
			res.Status = StatusModified
		}
	}

	return res, nil
}
