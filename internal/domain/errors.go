package domain

import "errors"

// ErrUnsafeArchive marks an archive that cannot be extracted safely:
// either an entry would escape the workspace or the file is not a readable
// archive at all. This is the only fatal error class in the pipeline;
// per-file parse failures degrade into the record instead.
var ErrUnsafeArchive = errors.New("unsafe archive")

// ErrMissingAnalysisID is returned by the store when a record arrives
// without an analysis identifier.
var ErrMissingAnalysisID = errors.New("record is missing analysis_id")
