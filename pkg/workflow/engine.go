package workflow

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"p9e.in/soltrack/models"
)

// nowFunc is swapped out by tests.
var nowFunc = time.Now

// autoScheduleLead is how far ahead an installation is auto-scheduled
// when it is dragged to "Agendado" without an explicit date.
const autoScheduleLead = 7 * 24 * time.Hour

var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

const dateLayout = "2006-01-02"
const displayDate = "02/01/2006"

// addEvent records a new timeline entry. New entries go in front so
// that events created in the same instant keep creation order after
// the stable descending sort.
func addEvent(inst *models.Installation, typ, description string, attachments []models.Attachment) {
	ev := models.Event{
		ID:          uuid.NewString(),
		Date:        nowFunc(),
		Type:        typ,
		Description: description,
		Attachments: attachments,
	}
	inst.Events = append(models.EventList{ev}, inst.Events...)
}

// Transition moves one status track of an installation to a new value
// and records the change on the timeline. It is the single authority
// for track mutations; persistence is the caller's job.
//
// Setting a track to its current value is a no-op: the installation is
// returned untouched and no event is appended.
//
// Catalog membership of the new value is deliberately not checked —
// the original system accepted arbitrary values and existing records
// may hold labels that have since been removed from the catalog.
func Transition(inst *models.Installation, track Track, newValue string) (bool, error) {
	spec, ok := trackSpecs[track]
	if !ok {
		return false, ErrUnknownTrack
	}

	value, err := spec.normalize(newValue)
	if err != nil {
		return false, err
	}

	old := spec.current(inst)
	if value == old {
		return false, nil
	}

	spec.apply(inst, value)

	// Dragging to "Agendado" without a date picks one a week out. Only
	// on the first time: a manually scheduled date is never overwritten.
	if track == TrackInstallation && value == StatusAgendado && inst.ScheduledDate == nil {
		scheduled := nowFunc().Add(autoScheduleLead)
		inst.ScheduledDate = &scheduled
		addEvent(inst, models.EventAgendamento,
			fmt.Sprintf("Instalação agendada automaticamente para %s.", scheduled.Format(displayDate)), nil)
	}

	addEvent(inst, models.EventNota,
		fmt.Sprintf("%s alterado de \"%s\" para \"%s\".", spec.label, old, value), nil)
	inst.Events.SortDesc()

	return true, nil
}

// ScheduleInstallation sets an explicit visit date and time. Unlike the
// drag path, it always forces the installation track to "Agendado" and
// always overwrites any previous scheduled date.
func ScheduleInstallation(inst *models.Installation, dateStr, timeStr, notes string) error {
	if inst.ProjectStatus != ProjectAprovado {
		return ErrProjectNotApproved
	}
	if !timePattern.MatchString(timeStr) {
		return ErrInvalidTime
	}
	day, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		return ErrInvalidDate
	}

	var hh, mm int
	fmt.Sscanf(timeStr, "%d:%d", &hh, &mm)
	scheduled := time.Date(day.Year(), day.Month(), day.Day(), hh, mm, 0, 0, time.Local)

	inst.ScheduledDate = &scheduled
	inst.Status = StatusAgendado

	description := fmt.Sprintf("Instalação agendada para %s às %s.", scheduled.Format(displayDate), timeStr)
	if notes != "" {
		description += " Observações: " + notes
	}
	addEvent(inst, models.EventAgendamento, description, nil)
	inst.Events.SortDesc()

	return nil
}

// RecordManualEvent appends a user-authored timeline entry. The date
// may be in the past (backfilling a visit, for example) but never in
// the future.
func RecordManualEvent(inst *models.Installation, typ, description string, date time.Time, attachments []models.Attachment) error {
	if description == "" {
		return ErrMissingDescription
	}
	if date.After(nowFunc()) {
		return ErrFutureEventDate
	}
	if typ == "" {
		typ = models.EventNota
	}

	ev := models.Event{
		ID:          uuid.NewString(),
		Date:        date,
		Type:        typ,
		Description: description,
		Attachments: attachments,
	}
	inst.Events = append(models.EventList{ev}, inst.Events...)
	inst.Events.SortDesc()

	return nil
}

// UpdateProtocolNumber sets the utility protocol number, recording the
// old and new values. An empty prior value is rendered as "N/A" in the
// event text. Returns false when the value is unchanged.
func UpdateProtocolNumber(inst *models.Installation, newProtocol string) bool {
	if newProtocol == inst.ProtocolNumber {
		return false
	}

	old := inst.ProtocolNumber
	inst.ProtocolNumber = newProtocol
	if newProtocol == "" {
		inst.ProtocolDate = nil
	} else if inst.ProtocolDate == nil {
		now := nowFunc()
		inst.ProtocolDate = &now
	}

	addEvent(inst, models.EventProtocolo,
		fmt.Sprintf("Número de protocolo alterado de \"%s\" para \"%s\".", protocolLabel(old), protocolLabel(newProtocol)), nil)
	inst.Events.SortDesc()

	return true
}

func protocolLabel(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

// TransferEquipment moves an inverter from one installation to another
// and records the transfer on both timelines.
func TransferEquipment(src, dst *models.Installation, inverterID int) error {
	idx := -1
	for i, inv := range src.Inverters {
		if inv.ID == inverterID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrInverterNotFound
	}

	inv := src.Inverters[idx]
	src.Inverters = append(src.Inverters[:idx], src.Inverters[idx+1:]...)
	inv.InstallationID = &dst.ID
	dst.Inverters = append(dst.Inverters, inv)

	unit := fmt.Sprintf("%s %s", inv.Brand, inv.Model)
	if inv.SerialNumber != "" {
		unit += fmt.Sprintf(" (nº de série %s)", inv.SerialNumber)
	}

	addEvent(src, models.EventNota,
		fmt.Sprintf("Inversor %s transferido para a instalação %s.", unit, dst.InstallationID), nil)
	src.Events.SortDesc()

	addEvent(dst, models.EventNota,
		fmt.Sprintf("Inversor %s recebido da instalação %s.", unit, src.InstallationID), nil)
	dst.Events.SortDesc()

	return nil
}

// ToggleArchive flips the archived flag. Archiving is deliberately
// silent: it leaves no trace on the timeline.
func ToggleArchive(inst *models.Installation) {
	inst.Archived = !inst.Archived
}
