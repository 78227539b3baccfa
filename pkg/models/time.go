package models

import "encoding/json"

// TimeSettings is the value of GetTime and the param of SetTime.
type TimeSettings struct {
	Dst  Dst  `json:"Dst"`
	Time Time `json:"Time"`
}

// Time mirrors the device's Time object. Field names match the wire format.
type Time struct {
	Year     int    `json:"year"`
	Mon      int    `json:"mon"`
	Day      int    `json:"day"`
	Hour     int    `json:"hour"`
	Min      int    `json:"min"`
	Sec      int    `json:"sec"`
	HourFmt  int    `json:"hourFmt"`  // 0 = 24h, 1 = 12h
	TimeFmt  string `json:"timeFmt"`  // e.g. "DD/MM/YYYY"
	TimeZone int    `json:"timeZone"` // offset in seconds, west of UTC positive
}

// Dst is the daylight saving block. It is only ever read back from the
// device and resent as is: a decoded Dst marshals to the exact object it
// was decoded from, including keys the fields below do not cover.
type Dst struct {
	Enable       int `json:"enable"`
	Offset       int `json:"offset"`
	StartMon     int `json:"startMon"`
	StartWeek    int `json:"startWeek"`
	StartWeekday int `json:"startWeekday"`
	StartHour    int `json:"startHour"`
	StartMin     int `json:"startMin"`
	StartSec     int `json:"startSec"`
	EndMon       int `json:"endMon"`
	EndWeek      int `json:"endWeek"`
	EndWeekday   int `json:"endWeekday"`
	EndHour      int `json:"endHour"`
	EndMin       int `json:"endMin"`
	EndSec       int `json:"endSec"`

	raw json.RawMessage
}

type dstFields Dst

func (d *Dst) UnmarshalJSON(data []byte) error {
	var f dstFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*d = Dst(f)
	d.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (d Dst) MarshalJSON() ([]byte, error) {
	if d.raw != nil {
		return d.raw, nil
	}
	return json.Marshal(dstFields(d))
}

// Raw returns the object the device sent, nil for a Dst built in code.
func (d Dst) Raw() json.RawMessage {
	return d.raw
}

// NormValue is the value of GetNorm.
type NormValue struct {
	Norm string `json:"norm"` // "NTSC" or "PAL"
}
