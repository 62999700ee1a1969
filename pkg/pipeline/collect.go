package pipeline

import (
	"github.com/arthur-debert/cssuseref/pkg/errors"
)

// collect walks root and returns the root-relative paths, in the style's
// separator, of every file selected by the include and exclude patterns.
// The destination directory is never descended into.
func (p *Pipeline) collect(root, dest string) ([]string, error) {
	info, err := p.fs.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound, "root %s does not exist", root).
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "root %s is not a directory", root).
			WithDetail("path", root)
	}

	var files []string
	if err := p.walk(root, "", dest, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (p *Pipeline) walk(dir, relDir, dest string, files *[]string) error {
	entries, err := p.fs.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", dir).
			WithDetail("path", dir)
	}

	for _, entry := range entries {
		abs := p.style.Join(dir, entry.Name())
		rel := entry.Name()
		if relDir != "" {
			rel = p.style.Join(relDir, entry.Name())
		}

		if entry.IsDir() {
			if abs == dest {
				p.logger.Debug().Str("path", abs).Msg("Skipping destination directory")
				continue
			}
			if err := p.walk(abs, rel, dest, files); err != nil {
				return err
			}
			continue
		}

		slashRel := p.style.ToSlash(rel)
		if !p.include.Match(slashRel) || p.exclude.Match(slashRel) {
			p.logger.Trace().Str("path", slashRel).Msg("File not selected")
			continue
		}
		*files = append(*files, rel)
	}
	return nil
}
