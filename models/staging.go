package models

type StagingResult struct {
	Dir string
	// Files are the paths of every copied file relative to Dir, sorted
	Files []string
	// Digest is the sha256 over Files and their contents, hex encoded
	Digest string
}
