package device

import (
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"
)

// Probe answers read-only questions about a single volume's filesystem.
// Paths are relative to the volume root and may use either separator.
type Probe interface {
	IsDir(name string) bool
	IsFile(name string) bool
	ReadText(name string, limit int64) (string, error)
	RootEntries() ([]fs.DirEntry, error)
}

// NewProbe returns a Probe over fsys. Lookups fall back to a case-insensitive
// match per path segment, since FAT, exFAT and NTFS volumes do not preserve
// case reliably.
func NewProbe(fsys fs.FS) Probe {
	return &fsProbe{fsys: fsys}
}

type fsProbe struct {
	fsys fs.FS
}

func cleanProbePath(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = strings.Trim(path.Clean("/"+name), "/")
	if name == "" {
		return "."
	}
	return name
}

// resolve finds the on-disk spelling of name.
func (p *fsProbe) resolve(name string) (string, fs.FileInfo, error) {
	name = cleanProbePath(name)
	if info, err := fs.Stat(p.fsys, name); err == nil {
		return name, info, nil
	}
	if name == "." {
		return "", nil, fs.ErrNotExist
	}

	dir := "."
	var info fs.FileInfo
	for _, segment := range strings.Split(name, "/") {
		entries, err := fs.ReadDir(p.fsys, dir)
		if err != nil {
			return "", nil, err
		}
		found := false
		for _, entry := range entries {
			if strings.EqualFold(entry.Name(), segment) {
				dir = path.Join(dir, entry.Name())
				info, err = entry.Info()
				if err != nil {
					return "", nil, err
				}
				found = true
				break
			}
		}
		if !found {
			return "", nil, fs.ErrNotExist
		}
	}
	return dir, info, nil
}

func (p *fsProbe) IsDir(name string) bool {
	_, info, err := p.resolve(name)
	return err == nil && info.IsDir()
}

func (p *fsProbe) IsFile(name string) bool {
	_, info, err := p.resolve(name)
	return err == nil && !info.IsDir()
}

func (p *fsProbe) ReadText(name string, limit int64) (string, error) {
	resolved, info, err := p.resolve(name)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", errors.New(name + " is a directory")
	}

	f, err := p.fsys.Open(resolved)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (p *fsProbe) RootEntries() ([]fs.DirEntry, error) {
	return fs.ReadDir(p.fsys, ".")
}
