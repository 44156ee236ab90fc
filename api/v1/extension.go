package v1

import (
	"time"

	"github.com/seniormoment/seniormoment/internal/models"
	"github.com/seniormoment/seniormoment/pkg/funnel"
)

// NewAlarmFromModel converts a models.Alarm to an API Alarm.
func NewAlarmFromModel(a models.Alarm) Alarm {
	var state AlarmState
	switch a.State {
	case models.AlarmStatePaused:
		state = AlarmStatePaused
	case models.AlarmStateRinging:
		state = AlarmStateRinging
	case models.AlarmStateDismissed:
		state = AlarmStateDismissed
	default:
		state = AlarmStateCounting
	}

	return Alarm{
		Id:         a.ID.String(),
		Name:       a.Name,
		Clip:       a.Clip,
		Duration:   a.Duration.String(),
		Remaining:  a.Remaining.Round(100 * time.Millisecond).String(),
		State:      state,
		Rings:      a.Rings,
		CreatedAt:  a.CreatedAt,
		NextRingAt: a.NextRingAt,
	}
}

func NewAlarmList(alarms []models.Alarm) AlarmList {
	l := AlarmList{Alarms: make([]Alarm, 0, len(alarms))}
	for _, a := range alarms {
		l.Alarms = append(l.Alarms, NewAlarmFromModel(a))
	}
	return l
}

func NewQueuedSound(item *funnel.WorkItem) QueuedSound {
	return QueuedSound{
		Id:       item.ID().String(),
		Name:     item.Name(),
		Priority: item.Priority(),
	}
}

func newFunnelItem(info funnel.ItemInfo) FunnelItem {
	return FunnelItem{
		Id:       info.ID.String(),
		Name:     info.Name,
		Priority: info.Priority,
		Age:      info.Age,
	}
}

// NewFunnelStatus converts a funnel snapshot to the API status.
func NewFunnelStatus(st funnel.Status) FunnelStatus {
	s := FunnelStatus{
		Pending: make([]FunnelItem, 0, len(st.Pending)),
		Closed:  st.Closed,
	}
	if st.Running != nil {
		s.Running = &RunningItem{
			FunnelItem: newFunnelItem(st.Running.ItemInfo),
			StartedAt:  st.Running.StartedAt,
		}
	}
	for _, p := range st.Pending {
		s.Pending = append(s.Pending, newFunnelItem(p))
	}
	return s
}
