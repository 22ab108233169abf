// Package backup snapshots toolkit configuration state so a theme apply
// can be undone. One directory per backup, named by a time-derived id,
// holding copied files, archived directories and a metadata descriptor.
//
// The on-disk descriptor layout is a durable contract: restore must keep
// working against backups written by older versions.
//
// The manager assumes single-writer access to the backup directory.
// Concurrent creates from separate processes can race on retention
// pruning; that is a documented limitation, not silently locked around.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phlthy88/unified-theming/internal/model"
)

// ErrNotFound reports a backup id with no directory or metadata on disk.
var ErrNotFound = errors.New("backup not found")

// DefaultRetention is the number of backups kept after every create.
const DefaultRetention = 10

const metadataFile = "metadata.json"

// Backup ids are wall-clock derived and lexically sortable. Nanosecond
// resolution keeps rapid repeated creates from colliding.
const idFormat = "20060102-150405.000000000"

// metadata is the on-disk descriptor, one per backup directory.
type metadata struct {
	BackupID  string                              `json:"backup_id"`
	Timestamp time.Time                           `json:"timestamp"`
	ThemeName string                              `json:"theme_name"`
	Toolkits  []model.Toolkit                     `json:"toolkits"`
	Files     map[model.Toolkit]map[string]string `json:"files"`
	Metadata  map[string]string                   `json:"metadata,omitempty"`
}

// Manager creates, lists, restores and prunes configuration backups.
type Manager struct {
	baseDir     string
	configPaths map[model.Toolkit][]string
	retention   int
	mu          sync.Mutex
}

// NewManager returns a Manager rooted at baseDir. configPaths maps each
// toolkit to the configuration files and directories worth snapshotting;
// paths that do not exist at backup time are skipped.
func NewManager(baseDir string, configPaths map[model.Toolkit][]string) (*Manager, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}
	return &Manager{
		baseDir:     baseDir,
		configPaths: configPaths,
		retention:   DefaultRetention,
	}, nil
}

// Create snapshots every existing configuration path and returns the new
// backup. Files are copied verbatim; directories are archived as one
// compressed bundle. After a successful create all but the most recent
// backups are pruned.
func (m *Manager) Create(themeName string) (*model.Backup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	id := now.Format(idFormat)
	dir := filepath.Join(m.baseDir, id)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("backup %s: %w", id, err)
	}

	meta := metadata{
		BackupID:  id,
		Timestamp: now,
		ThemeName: themeName,
		Files:     make(map[model.Toolkit]map[string]string),
		Metadata:  map[string]string{},
	}

	// Fixed toolkit order keeps descriptors reproducible.
	for _, tk := range model.Toolkits() {
		paths, ok := m.configPaths[tk]
		if !ok {
			continue
		}
		for i, src := range paths {
			info, err := os.Stat(src)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				os.RemoveAll(dir)
				return nil, fmt.Errorf("backup %s: stat %s: %w", id, src, err)
			}

			artifact := fmt.Sprintf("%s-%02d-%s", tk, i, filepath.Base(src))
			if info.IsDir() {
				artifact += ".tar.gz"
				if err := createTarGz(src, filepath.Join(dir, artifact)); err != nil {
					os.RemoveAll(dir)
					return nil, fmt.Errorf("backup %s: archive %s: %w", id, src, err)
				}
			} else {
				if err := copyFile(src, filepath.Join(dir, artifact)); err != nil {
					os.RemoveAll(dir)
					return nil, fmt.Errorf("backup %s: copy %s: %w", id, src, err)
				}
			}

			if meta.Files[tk] == nil {
				meta.Files[tk] = make(map[string]string)
				meta.Toolkits = append(meta.Toolkits, tk)
			}
			meta.Files[tk][src] = artifact
		}
	}

	if err := writeMetadata(filepath.Join(dir, metadataFile), &meta); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("backup %s: write metadata: %w", id, err)
	}

	if _, err := m.pruneLocked(m.retention); err != nil {
		log.Printf("Warning: pruning old backups failed: %v", err)
	}

	return &model.Backup{
		BackupID:   id,
		Timestamp:  now,
		ThemeName:  themeName,
		BackupPath: dir,
		Toolkits:   meta.Toolkits,
		Metadata:   meta.Metadata,
	}, nil
}

// Restore copies every recorded artifact back to its original location.
// Restore is best-effort: a missing artifact inside an otherwise valid
// backup is skipped and reported in the returned warnings, while an
// unknown id fails with ErrNotFound and a failing copy fails outright.
func (m *Manager) Restore(id string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir := filepath.Join(m.baseDir, id)
	metaPath := filepath.Join(dir, metadataFile)

	meta, err := readMetadata(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("restore %s: read metadata: %w", id, err)
	}

	var warnings []string
	for _, tk := range model.Toolkits() {
		files, ok := meta.Files[tk]
		if !ok {
			continue
		}
		// Deterministic restore order for reproducible logs.
		origs := make([]string, 0, len(files))
		for orig := range files {
			origs = append(origs, orig)
		}
		sort.Strings(origs)

		for _, orig := range origs {
			artifact := filepath.Join(dir, files[orig])
			if _, err := os.Stat(artifact); err != nil {
				warnings = append(warnings,
					fmt.Sprintf("artifact %s for %s is missing, skipped", files[orig], orig))
				continue
			}

			if err := os.MkdirAll(filepath.Dir(orig), 0o755); err != nil {
				return warnings, fmt.Errorf("restore %s: recreate %s: %w", id, filepath.Dir(orig), err)
			}

			if strings.HasSuffix(artifact, ".tar.gz") {
				if err := extractTarGz(artifact, filepath.Dir(orig)); err != nil {
					return warnings, fmt.Errorf("restore %s: extract %s: %w", id, artifact, err)
				}
			} else {
				if err := copyFile(artifact, orig); err != nil {
					return warnings, fmt.Errorf("restore %s: copy to %s: %w", id, orig, err)
				}
			}
		}
	}

	return warnings, nil
}

// List returns all backups sorted newest first. Directories with corrupt
// or unreadable metadata are skipped with a warning.
func (m *Manager) List() []*model.Backup {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listLocked()
}

func (m *Manager) listLocked() []*model.Backup {
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		log.Printf("Warning: reading backup directory: %v", err)
		return nil
	}

	var backups []*model.Backup
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := readMetadata(filepath.Join(m.baseDir, entry.Name(), metadataFile))
		if err != nil {
			log.Printf("Warning: skipping backup %s: %v", entry.Name(), err)
			continue
		}
		backups = append(backups, &model.Backup{
			BackupID:   meta.BackupID,
			Timestamp:  meta.Timestamp,
			ThemeName:  meta.ThemeName,
			BackupPath: filepath.Join(m.baseDir, entry.Name()),
			Toolkits:   meta.Toolkits,
			Metadata:   meta.Metadata,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups
}

// Latest returns the most recent backup, if any exist.
func (m *Manager) Latest() (*model.Backup, bool) {
	backups := m.List()
	if len(backups) == 0 {
		return nil, false
	}
	return backups[0], true
}

// Prune deletes all but the keep most recent backups and returns the
// number removed.
func (m *Manager) Prune(keep int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pruneLocked(keep)
}

func (m *Manager) pruneLocked(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	backups := m.listLocked()
	if len(backups) <= keep {
		return 0, nil
	}

	removed := 0
	for _, b := range backups[keep:] {
		if err := os.RemoveAll(b.BackupPath); err != nil {
			return removed, fmt.Errorf("prune %s: %w", b.BackupID, err)
		}
		removed++
	}
	return removed, nil
}

// Delete removes a single backup by id.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir := filepath.Join(m.baseDir, id)
	if _, err := os.Stat(filepath.Join(dir, metadataFile)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	return os.RemoveAll(dir)
}

func writeMetadata(path string, meta *metadata) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func readMetadata(path string) (*metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var meta metadata
	if err := json.NewDecoder(f).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if meta.BackupID == "" {
		return nil, fmt.Errorf("metadata missing backup_id")
	}
	return &meta, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
