// Package layout clusters nearby alarms so overlapping notes can be staggered.
package layout

import (
	"slices"

	"github.com/borgmon/sticky-alarm/pkg/geometry"
	"github.com/borgmon/sticky-alarm/pkg/models"
)

// StaggerStep is the horizontal shift applied per position inside a group
const StaggerStep = 20.0

// Placement is where a note is drawn on the timeline
type Placement struct {
	Alarm   models.Alarm
	Group   int     // index of the group, ascending by time
	Stagger int     // 0-based position inside the group
	Y       float64 // vertical center of the note
	Indent  float64 // horizontal stagger offset
}

// Threshold returns the proximity, in minutes, under which two notes overlap
func Threshold(z geometry.Zoom) int {
	if z == geometry.Expanded {
		return 15
	}
	return 40
}

// Groups partitions alarms into single-linkage clusters. Alarms are sorted
// by time (stable, so equal times keep their input order) and each one joins
// the first group holding a member closer than the threshold.
func Groups(alarms []models.Alarm, z geometry.Zoom) [][]models.Alarm {
	sorted := slices.Clone(alarms)
	slices.SortStableFunc(sorted, func(a, b models.Alarm) int {
		return a.Time - b.Time
	})

	threshold := Threshold(z)
	groups := [][]models.Alarm{}

	for _, alarm := range sorted {
		placed := false
		for gi, group := range groups {
			if hasNeighbor(group, alarm, threshold) {
				groups[gi] = append(group, alarm)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []models.Alarm{alarm})
		}
	}

	return groups
}

func hasNeighbor(group []models.Alarm, alarm models.Alarm, threshold int) bool {
	for _, member := range group {
		gap := member.Time - alarm.Time
		if gap < 0 {
			gap = -gap
		}
		if gap < threshold {
			return true
		}
	}
	return false
}

// Arrange computes a placement for every alarm at zoom z
func Arrange(alarms []models.Alarm, z geometry.Zoom) []Placement {
	placements := make([]Placement, 0, len(alarms))
	for gi, group := range Groups(alarms, z) {
		for si, alarm := range group {
			placements = append(placements, Placement{
				Alarm:   alarm,
				Group:   gi,
				Stagger: si,
				Y:       geometry.MinutesToOffset(float64(alarm.Time), z),
				Indent:  float64(si) * StaggerStep,
			})
		}
	}
	return placements
}
