package installer

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// CopyKeys copies every regular file of src into dst under the same
// relative path. Files already present in dst are left untouched.
// It returns the number of files copied.
func CopyKeys(src, dst billy.Filesystem) (int, error) {
	n := 0
	err := util.Walk(src, "/", func(name string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.Mode().IsRegular() {
			return nil
		}
		_, err = dst.Stat(name)
		if err == nil {
			return nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := copyFile(src, dst, name, fi); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

func copyFile(src, dst billy.Filesystem, name string, fi os.FileInfo) error {
	r, err := src.Open(name)
	if err != nil {
		return err
	}
	defer func() {
		err := r.Close()
		if err != nil {
			log.Printf("close %q: %+v", name, err)
		}
	}()

	if err := dst.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	w, err := dst.OpenFile(name, flags, fi.Mode().Perm())
	if err != nil {
		return err
	}
	_, err = io.Copy(w, r)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// A partial file would never be replaced.
		if rerr := dst.Remove(name); rerr != nil {
			log.Printf("remove %q: %+v", name, rerr)
		}
		return err
	}

	if ch, ok := dst.(billy.Change); ok {
		mtime := fi.ModTime()
		if err := ch.Chtimes(name, mtime, mtime); err != nil {
			log.Printf("chtimes %q: %+v", name, err)
		}
	}
	return nil
}
