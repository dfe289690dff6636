// Package sums records and verifies checksums of the key files the
// server uses to validate mod signatures.
package sums

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

const DefaultPath = "keys.sum"

var hashNames = []string{
	"md5",
	"sha1",
	"sha256",
	"sha3-256",
}

func newHashes() []hash.Hash {
	return []hash.Hash{
		md5.New(),
		sha1.New(),
		sha256.New(),
		sha3.New256(),
	}
}

// Sum returns "name:hex" checksums of everything read from r.
func Sum(r io.Reader) ([]string, error) {
	hashes := newHashes()
	ww := make([]io.Writer, len(hashes))
	for i, h := range hashes {
		ww[i] = h
	}
	if _, err := io.Copy(io.MultiWriter(ww...), r); err != nil {
		return nil, err
	}
	sums := make([]string, len(hashes))
	for i, name := range hashNames {
		sums[i] = fmt.Sprintf("%s:%x", name, hashes[i].Sum(nil))
	}
	return sums, nil
}

// Scan computes checksums of every regular file in fs.
// Keys are sorted by path.
func Scan(fs billy.Filesystem) (*Manifest, error) {
	var m Manifest
	err := util.Walk(fs, "/", func(name string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.Mode().IsRegular() {
			return nil
		}
		sums, err := sumFile(fs, name)
		if err != nil {
			return err
		}
		path := strings.TrimPrefix(filepath.ToSlash(name), "/")
		m.Keys = append(m.Keys, Key{Path: path, Sums: sums})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(m.Keys, func(i, j int) bool {
		return m.Keys[i].Path < m.Keys[j].Path
	})
	return &m, nil
}

func sumFile(fs billy.Filesystem, name string) ([]string, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		cerr := f.Close()
		if cerr != nil {
			log.Printf("close %q: %+v", name, cerr)
		}
	}()
	return Sum(f)
}

// Encode formats m as HCL.
func Encode(m *Manifest) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, k := range m.Keys {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("key", []string{k.Path})
		vals := make([]cty.Value, len(k.Sums))
		for i, sum := range k.Sums {
			vals[i] = cty.StringVal(sum)
		}
		if len(vals) > 0 {
			block.Body().SetAttributeValue("sums", cty.ListVal(vals))
		} else {
			block.Body().SetAttributeValue("sums", cty.ListValEmpty(cty.String))
		}
	}
	return f.Bytes()
}

// Decode parses an HCL manifest. The parser keeps the source for
// diagnostics output.
func Decode(p *hclparse.Parser, src []byte, filename string) (*Manifest, hcl.Diagnostics) {
	file, diags := p.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	var m Manifest
	diags = append(diags, gohcl.DecodeBody(file.Body, nil, &m)...)
	if diags.HasErrors() {
		return nil, diags
	}
	return &m, diags
}

type Problem int

const (
	// Missing means a recorded key file no longer exists.
	Missing Problem = iota
	// Changed means a recorded checksum does not match.
	Changed
	// Untracked means a key file is not in the manifest.
	Untracked
)

func (p Problem) String() string {
	switch p {
	case Missing:
		return "missing"
	case Changed:
		return "checksum mismatch"
	case Untracked:
		return "untracked"
	}
	return fmt.Sprintf("Problem(%d)", int(p))
}

type Mismatch struct {
	Path    string
	Problem Problem
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s", m.Path, m.Problem)
}

// Verify compares the recorded manifest want with the scanned manifest
// got. Every recorded sum must be present for the file to match, and a
// key recorded without sums never matches.
func Verify(want, got *Manifest) []Mismatch {
	actual := make(map[string]map[string]struct{}, len(got.Keys))
	for _, k := range got.Keys {
		set := make(map[string]struct{}, len(k.Sums))
		for _, sum := range k.Sums {
			set[sum] = struct{}{}
		}
		actual[k.Path] = set
	}

	var out []Mismatch
	seen := make(map[string]bool, len(want.Keys))
	for _, k := range want.Keys {
		seen[k.Path] = true
		set, ok := actual[k.Path]
		if !ok {
			out = append(out, Mismatch{k.Path, Missing})
			continue
		}
		if len(k.Sums) == 0 {
			out = append(out, Mismatch{k.Path, Changed})
			continue
		}
		for _, sum := range k.Sums {
			if _, ok := set[sum]; !ok {
				out = append(out, Mismatch{k.Path, Changed})
				break
			}
		}
	}
	for _, k := range got.Keys {
		if !seen[k.Path] {
			out = append(out, Mismatch{k.Path, Untracked})
		}
	}
	return out
}
