package storage

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/san-kum/orbsim/internal/orb"
)

const (
	KeyPosX = "orbPosX"
	KeyPosY = "orbPosY"
)

// PositionFile is a string key-value file holding the orb's last position
// under KeyPosX and KeyPosY. Values are kept as strings so a hand-edited or
// foreign file degrades to "no saved position" instead of failing to load.
type PositionFile struct {
	path string
}

var _ orb.PositionStore = (*PositionFile)(nil)

func NewPositionFile(path string) *PositionFile {
	return &PositionFile{path: path}
}

func (p *PositionFile) Path() string { return p.path }

// Load returns the saved position. A missing file, unreadable json or a
// non-numeric coordinate all report false.
func (p *PositionFile) Load() (orb.Vec2, bool) {
	kv, err := p.read()
	if err != nil {
		return orb.Vec2{}, false
	}
	x, okX := parseCoord(kv[KeyPosX])
	y, okY := parseCoord(kv[KeyPosY])
	if !okX || !okY {
		return orb.Vec2{}, false
	}
	return orb.Vec2{X: x, Y: y}, true
}

// Save writes both coordinates, keeping any other keys already in the file.
func (p *PositionFile) Save(pos orb.Vec2) error {
	kv, err := p.read()
	if err != nil {
		kv = make(map[string]string)
	}
	kv[KeyPosX] = strconv.FormatFloat(pos.X, 'g', -1, 64)
	kv[KeyPosY] = strconv.FormatFloat(pos.Y, 'g', -1, 64)

	return p.write(kv)
}

func (p *PositionFile) write(kv map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return err
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}

// Clear removes the saved position, leaving any other keys in place.
func (p *PositionFile) Clear() error {
	kv, err := p.read()
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return os.Remove(p.path)
	}
	delete(kv, KeyPosX)
	delete(kv, KeyPosY)
	if len(kv) == 0 {
		return os.Remove(p.path)
	}
	return p.write(kv)
}

func (p *PositionFile) read() (map[string]string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, err
	}
	kv := make(map[string]string)
	if err := json.Unmarshal(data, &kv); err != nil {
		return nil, err
	}
	return kv, nil
}

func parseCoord(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
