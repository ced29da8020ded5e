package workflow

import (
	"github.com/lib/pq"

	"p9e.in/soltrack/models"
)

// Catalog operations edit the administrator-managed status lists in
// place. Matching is case-sensitive and exact. None of these cascade
// to installations already holding an affected value: a record keeps
// its label even after the label leaves the catalog.

// catalogList resolves the list a catalog-backed track draws from. The
// report track has no catalog (fixed Enviado/Pendente sentinels).
func catalogList(cfg *models.StatusConfig, track Track) (*pq.StringArray, error) {
	switch track {
	case TrackInstallation:
		return &cfg.InstallationStatuses, nil
	case TrackProject:
		return &cfg.ProjectStatuses, nil
	case TrackHomologation:
		return &cfg.HomologationStatuses, nil
	default:
		return nil, ErrUnknownTrack
	}
}

// ListStatuses returns the ordered catalog for a track.
func ListStatuses(cfg *models.StatusConfig, track Track) ([]string, error) {
	list, err := catalogList(cfg, track)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), *list...), nil
}

// DefaultStatus is the value assigned to new installations: the first
// catalog entry.
func DefaultStatus(cfg *models.StatusConfig, track Track) (string, error) {
	list, err := catalogList(cfg, track)
	if err != nil {
		return "", err
	}
	if len(*list) == 0 {
		return "", ErrStatusNotFound
	}
	return (*list)[0], nil
}

// AddStatus appends a new label to the end of a track's catalog.
func AddStatus(cfg *models.StatusConfig, track Track, label string) error {
	list, err := catalogList(cfg, track)
	if err != nil {
		return err
	}
	if label == "" {
		return ErrEmptyStatus
	}
	if indexOf(*list, label) >= 0 {
		return ErrDuplicateStatus
	}
	*list = append(*list, label)
	return nil
}

// RenameStatus replaces a label in place, preserving its position.
func RenameStatus(cfg *models.StatusConfig, track Track, oldLabel, newLabel string) error {
	list, err := catalogList(cfg, track)
	if err != nil {
		return err
	}
	if newLabel == "" {
		return ErrEmptyStatus
	}
	idx := indexOf(*list, oldLabel)
	if idx < 0 {
		return ErrStatusNotFound
	}
	if newLabel != oldLabel && indexOf(*list, newLabel) >= 0 {
		return ErrDuplicateStatus
	}
	(*list)[idx] = newLabel
	return nil
}

// DeleteStatus removes a label from a track's catalog.
func DeleteStatus(cfg *models.StatusConfig, track Track, label string) error {
	list, err := catalogList(cfg, track)
	if err != nil {
		return err
	}
	idx := indexOf(*list, label)
	if idx < 0 {
		return ErrStatusNotFound
	}
	*list = append((*list)[:idx], (*list)[idx+1:]...)
	return nil
}

// ReorderStatuses replaces the list wholesale. The new order must be a
// permutation of the current set.
func ReorderStatuses(cfg *models.StatusConfig, track Track, newOrder []string) error {
	list, err := catalogList(cfg, track)
	if err != nil {
		return err
	}
	if len(newOrder) != len(*list) {
		return ErrNotPermutation
	}
	seen := make(map[string]int, len(*list))
	for _, s := range *list {
		seen[s]++
	}
	for _, s := range newOrder {
		if seen[s] == 0 {
			return ErrNotPermutation
		}
		seen[s]--
	}
	*list = append(pq.StringArray{}, newOrder...)
	return nil
}

func indexOf(list pq.StringArray, label string) int {
	for i, s := range list {
		if s == label {
			return i
		}
	}
	return -1
}
