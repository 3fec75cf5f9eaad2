package publisher

// Exported aliases for testing internal functions from
// the publisher_test package.

// ValidateForTest exposes validate.
var ValidateForTest = validate

// CountFilesForTest exposes countFiles.
var CountFilesForTest = countFiles
