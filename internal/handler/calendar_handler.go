package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/julienschmidt/httprouter"

	"meeting-scheduler-api/internal/model"
)

const productID = "-//meeting-scheduler-api//EN"

// date and time are free-form, so only these spellings make it into the
// export
var timeLayouts = []string{"3:04 PM", "3:04PM", "15:04"}

const dateLayout = "2006-01-02"

// Calendar exports every meeting whose date and time parse as an iCalendar
// feed. Times are floating: no TZID, no UTC suffix.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	now := time.Now().UTC()
	for _, m := range h.store.ListMeetings() {
		if ev, ok := toEvent(m, now); ok {
			cal.Children = append(cal.Children, ev)
		}
	}

	var buf bytes.Buffer
	if len(cal.Children) == 0 {
		// a VCALENDAR must carry at least one component, so the encoder
		// can't be used for the empty envelope
		fmt.Fprintf(&buf, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:%s\r\nEND:VCALENDAR\r\n", productID)
	} else if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		h.writeError(w, fmt.Errorf("encode calendar: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// longer durations get no DTEND
const maxEventMinutes = 366 * 24 * 60

func meetingStart(m model.Meeting) (time.Time, bool) {
	date, ok := m.Date.(string)
	if !ok {
		return time.Time{}, false
	}
	tm, ok := m.Time.(string)
	if !ok {
		return time.Time{}, false
	}
	for _, tl := range timeLayouts {
		t, err := time.ParseInLocation(dateLayout+" "+tl, date+" "+tm, time.Local)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toEvent(m model.Meeting, stamp time.Time) (*ical.Component, bool) {
	start, ok := meetingStart(m)
	if !ok {
		return nil, false
	}

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, fmt.Sprintf("meeting-%d@meeting-scheduler-api", m.ID))
	if title, ok := jsonText(m.Title); ok {
		ve.Props.SetText(ical.PropSummary, title)
	}
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	ve.Props.Set(floating(ical.PropDateTimeStart, start))

	if mins, ok := durationMinutes(m.Duration); ok && mins > 0 && mins <= maxEventMinutes {
		ve.Props.Set(floating(ical.PropDateTimeEnd, start.Add(time.Duration(mins*float64(time.Minute)))))
	}

	var names []string
	if list, ok := m.Participants.([]any); ok {
		for _, p := range list {
			s, ok := p.(string)
			if !ok || s == "" {
				continue
			}
			if strings.Contains(s, "@") {
				att := ical.NewProp(ical.PropAttendee)
				att.SetText("mailto:" + s)
				ve.Props.Add(att)
			} else {
				names = append(names, s)
			}
		}
	}
	if len(names) > 0 {
		ve.Props.SetText(ical.PropDescription, "Participants: "+strings.Join(names, ", "))
	}

	return ve, true
}

// jsonText returns strings as is and any other value as its JSON encoding.
func jsonText(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// durationMinutes reads a numeric duration as minutes.
func durationMinutes(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func floating(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.Value = t.Format("20060102T150405")
	return p
}
