// Package databank loads a game data folder into Object and Transition
// entities. A databank is a directory with three subfolders:
//
//	objects/      one numbered text file per object, plus nextObjectNumber.txt
//	transitions/  one file per recipe, named <actor>_<target>[_LA][_LT].txt
//	categories/   one file per category object listing its members
//
// The loader only guarantees the entity-level invariants (ids, transition
// kinds, category membership); building the crafting graph from the loaded
// entities is the job of package graph.
package databank

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/craftviz/craftviz/pkg/errors"
)

// BareHandsID is the reserved object id for empty hands. It never appears
// as an object file on disk; the loader synthesizes it.
const BareHandsID = 0

// Object is an in-game item or material.
type Object struct {
	ID      int    // positive, or 0 for bare hands
	Name    string // display name, categories start with '@'
	Natural bool   // obtainable with zero prior actions

	// Category marks grouping objects that stand in for any of their
	// members in a recipe. Members holds the member object ids in file
	// order; it is nil for ordinary objects.
	Category bool
	Members  []int
}

// setCategory marks the object as a category with the given members.
func (o *Object) setCategory(members []int) error {
	if len(members) == 0 {
		return errors.New(errors.ErrCodeInvalidCategory, "category %d (%s) has no members", o.ID, o.Name)
	}
	if !strings.HasPrefix(o.Name, "@") {
		return errors.New(errors.ErrCodeInvalidCategory, "category %d name %q does not start with '@'", o.ID, o.Name)
	}
	o.Category = true
	o.Members = members
	return nil
}

// parseObjectFile reads a single objects/<id>.txt file.
//
// The format is two header lines (an "id=<n>" line and the name) followed by
// key=value lines. An object is natural if it spawns on the map
// (mapChance != 0) or marks a death (deathMarker != 0).
func parseObjectFile(path string) (*Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return nil, errors.New(errors.ErrCodeInvalidObject, "%s: missing id line", path)
	}
	idLine := strings.TrimSpace(sc.Text())
	if !strings.HasPrefix(idLine, "id=") {
		return nil, errors.New(errors.ErrCodeInvalidObject, "%s: malformed id line %q", path, idLine)
	}
	id, err := strconv.Atoi(strings.TrimPrefix(idLine, "id="))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidObject, err, "%s: malformed id line %q", path, idLine)
	}

	if !sc.Scan() {
		return nil, errors.New(errors.ErrCodeInvalidObject, "%s: missing name line", path)
	}
	name := strings.TrimSpace(sc.Text())

	natural := false
	for sc.Scan() && !natural {
		key, value, ok := strings.Cut(sc.Text(), "=")
		if !ok {
			continue
		}
		switch key {
		case "mapChance":
			// The value may carry a '#'-separated biome suffix.
			chance, _, _ := strings.Cut(value, "#")
			if v, err := strconv.ParseFloat(strings.TrimSpace(chance), 64); err == nil && v != 0 {
				natural = true
			}
		case "deathMarker":
			if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v != 0 {
				natural = true
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return &Object{ID: id, Name: name, Natural: natural}, nil
}
