// Package assets locates optional media files. A missing file is never an
// error the player sees: lookups try each known format in turn and give up
// quietly when none exists.
package assets

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"
)

// Sound names used by the game.
const (
	SoundBreak = "break"
	SoundSong  = "song"
)

// DefaultFormats is the fallback chain, most preferred first.
var DefaultFormats = []string{".mp3", ".wav", ".ogg"}

// ErrNotFound is returned when no format in the chain exists.
var ErrNotFound = errors.New("assets: not found")

// Resolver looks sounds up in a file system.
type Resolver struct {
	fsys    fs.FS
	dir     string
	formats []string
}

// NewResolver resolves sounds under dir inside fsys. A nil fsys resolves
// nothing.
func NewResolver(fsys fs.FS, dir string) *Resolver {
	return &Resolver{fsys: fsys, dir: dir, formats: DefaultFormats}
}

// NewDirResolver resolves sounds in a directory on disk. An empty dir
// resolves nothing.
func NewDirResolver(dir string) *Resolver {
	if dir == "" {
		return NewResolver(nil, ".")
	}
	return NewResolver(os.DirFS(dir), ".")
}

// Valid reports whether name is a plain sound name without path elements.
func Valid(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\.`)
}

// Resolve returns the path of the first existing file for name.
func (r *Resolver) Resolve(name string) (string, error) {
	if r.fsys == nil || !Valid(name) {
		return "", ErrNotFound
	}
	for _, ext := range r.formats {
		p := path.Join(r.dir, name+ext)
		info, err := fs.Stat(r.fsys, p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", ErrNotFound
}

// Available reports whether any format of name exists.
func (r *Resolver) Available(name string) bool {
	_, err := r.Resolve(name)
	return err == nil
}

// Read returns the content of the resolved file and its path.
func (r *Resolver) Read(name string) ([]byte, string, error) {
	p, err := r.Resolve(name)
	if err != nil {
		return nil, "", err
	}
	data, err := fs.ReadFile(r.fsys, p)
	if err != nil {
		return nil, "", err
	}
	return data, p, nil
}
