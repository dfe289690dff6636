package sums

// Manifest lists the expected checksums of the server key files.
type Manifest struct {
	Keys []Key `hcl:"key,block"`
}

type Key struct {
	// Path is relative to the keys directory, slash separated.
	Path string   `hcl:"path,label"`
	Sums []string `hcl:"sums,attr"`
}
