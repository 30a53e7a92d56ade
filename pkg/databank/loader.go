package databank

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/craftviz/craftviz/pkg/errors"
)

// Databank holds the fully loaded entity set of one data folder.
type Databank struct {
	// Objects maps object id to entity. Id 0 is always present (bare hands).
	Objects map[int]*Object
	// Transitions in directory order (sorted by file name for determinism).
	Transitions []*Transition
}

// Load reads a complete databank from root. It expects the objects/,
// transitions/ and categories/ subfolders of the game data layout.
//
// Per-object files that are missing or unreadable are skipped, matching the
// sparse numbering of real data folders. Malformed transition or category
// records are fatal: they indicate corrupt data, not gaps.
func Load(root string) (*Databank, error) {
	objects, err := loadObjects(filepath.Join(root, "objects"))
	if err != nil {
		return nil, err
	}
	transitions, err := loadTransitions(filepath.Join(root, "transitions"))
	if err != nil {
		return nil, err
	}
	if err := loadCategories(filepath.Join(root, "categories"), objects); err != nil {
		return nil, err
	}
	return &Databank{Objects: objects, Transitions: transitions}, nil
}

// loadObjects parses every numbered object file up to nextObjectNumber.txt
// and synthesizes the bare-hands object.
func loadObjects(dir string) (map[int]*Object, error) {
	data, err := os.ReadFile(filepath.Join(dir, "nextObjectNumber.txt"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabankNotFound, err, "read object count in %s", dir)
	}
	next, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidObject, err, "parse nextObjectNumber.txt in %s", dir)
	}

	objects := make(map[int]*Object, next)
	for id := 0; id < next; id++ {
		obj, err := parseObjectFile(filepath.Join(dir, fmt.Sprintf("%d.txt", id)))
		if err != nil {
			// Sparse numbering: absent or unparsable files are not objects.
			continue
		}
		if obj.ID != id {
			return nil, errors.New(errors.ErrCodeInvalidObject,
				"object file %d.txt declares id %d", id, obj.ID)
		}
		objects[id] = obj
	}

	if _, ok := objects[BareHandsID]; ok {
		return nil, errors.New(errors.ErrCodeInvalidObject, "object id 0 is reserved for bare hands")
	}
	objects[BareHandsID] = &Object{ID: BareHandsID, Name: "Bare Hands", Natural: true}
	return objects, nil
}

// loadTransitions parses every transitions/*.txt file, sorted by name so
// that transition node ids are stable across loads.
func loadTransitions(dir string) ([]*Transition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabankNotFound, err, "read transitions in %s", dir)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	transitions := make([]*Transition, 0, len(names))
	for _, name := range names {
		t, err := parseTransitionFile(dir, name)
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, t)
	}
	return transitions, nil
}

// loadCategories parses every categories/*.txt file and marks the parent
// objects as categories. A category referencing an unknown object is a
// data-integrity error.
func loadCategories(dir string, objects map[int]*Object) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			// Databanks without categories are valid.
			return nil
		}
		return errors.Wrap(errors.ErrCodeDatabankNotFound, err, "read categories in %s", dir)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		if err := parseCategoryFile(filepath.Join(dir, e.Name()), objects); err != nil {
			return err
		}
	}
	return nil
}

func parseCategoryFile(path string, objects map[int]*Object) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		return errors.New(errors.ErrCodeInvalidCategory, "%s: truncated category file", path)
	}

	parentID, err := headerValue(lines[0])
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCategory, err, "%s: bad parentID line", path)
	}
	count, err := headerValue(lines[1])
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCategory, err, "%s: bad numObjects line", path)
	}
	if len(lines) < 2+count {
		return errors.New(errors.ErrCodeInvalidCategory, "%s: declares %d members, has %d", path, count, len(lines)-2)
	}

	parent, ok := objects[parentID]
	if !ok {
		return errors.New(errors.ErrCodeMissingObject, "%s: category parent %d not loaded", path, parentID)
	}

	members := make([]int, 0, count)
	for _, line := range lines[2 : 2+count] {
		// Member lines may carry a probability suffix after '@'.
		idField, _, _ := strings.Cut(strings.TrimSpace(line), " ")
		id, err := strconv.Atoi(idField)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCategory, err, "%s: bad member line %q", path, line)
		}
		if _, ok := objects[id]; !ok {
			return errors.New(errors.ErrCodeMissingObject, "%s: category member %d not loaded", path, id)
		}
		members = append(members, id)
	}

	return parent.setCategory(members)
}

// headerValue parses a "key=value" line into its integer value.
func headerValue(line string) (int, error) {
	_, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok {
		return 0, fmt.Errorf("missing '=' in %q", line)
	}
	return strconv.Atoi(strings.TrimSpace(value))
}
