package disk

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// AssetFile holds the full contents of an obfuscated asset read from disk.
// The cipher works on whole in-memory buffers, so the file is read eagerly.
type AssetFile struct {
	path string
	mode os.FileMode
	data []byte
}

// OpenAsset reads the asset at path from fs
func OpenAsset(fs afero.Fs, path string) (*AssetFile, error) {
	stat, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat asset file: %w", err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("asset path is a directory: %s", path)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset file: %w", err)
	}

	return &AssetFile{
		path: path,
		mode: stat.Mode().Perm(),
		data: data,
	}, nil
}

// Path returns the path the asset was read from
func (a *AssetFile) Path() string {
	return a.path
}

// Mode returns the permission bits of the source file
func (a *AssetFile) Mode() os.FileMode {
	return a.mode
}

// Data returns the asset contents. Callers transform it in place.
func (a *AssetFile) Data() []byte {
	return a.data
}

// Size returns the asset length in bytes
func (a *AssetFile) Size() int64 {
	return int64(len(a.data))
}

// WriteAtomic writes data to a temporary file next to path and renames it into place
func WriteAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := fs.Chmod(tmpName, perm); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// OutputPath returns override when set, otherwise input with suffix appended
func OutputPath(input, suffix, override string) string {
	if override != "" {
		return override
	}
	return input + suffix
}
