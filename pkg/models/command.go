package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Empty is the `{}` param sent with commands that take no arguments.
type Empty struct{}

// Command is one element of the JSON array posted to /cgi-bin/api.cgi
type Command struct {
	Cmd    string `json:"cmd"`
	Action int    `json:"action"` // 0 or 1, meaning is owned by the device
	Param  any    `json:"param"`
}

// NewCommand builds a command, substituting an empty object for a nil param
// so the device never sees `"param": null`.
func NewCommand(cmd string, action int, param any) Command {
	if param == nil {
		param = Empty{}
	}
	return Command{Cmd: cmd, Action: action, Param: param}
}

// Response is one element of the JSON array returned by the device.
type Response struct {
	Cmd   string          `json:"cmd"`
	Code  int             `json:"code"`
	Value json.RawMessage `json:"value,omitempty"`
	Error *ResponseError  `json:"error,omitempty"`
}

// ResponseError is the error object the device returns in place of a value.
type ResponseError struct {
	RspCode int    `json:"rspCode"`
	Detail  string `json:"detail"`
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("device error %d: %s", e.RspCode, e.Detail)
}

// RspCodeLoginRequired is returned when the token is missing or expired.
const RspCodeLoginRequired = -6

var ErrEmptyResponse = errors.New("device returned an empty response")

// Decode unmarshals the value of r into v. A device-side error element is
// returned as *ResponseError.
func (r Response) Decode(v any) error {
	if r.Error != nil {
		return r.Error
	}
	if r.Code != 0 {
		return &ResponseError{RspCode: r.Code, Detail: fmt.Sprintf("%s failed", r.Cmd)}
	}
	if len(r.Value) == 0 {
		return fmt.Errorf("%s: response has no value", r.Cmd)
	}
	if err := json.Unmarshal(r.Value, v); err != nil {
		return fmt.Errorf("%s: decode value: %w", r.Cmd, err)
	}
	return nil
}

// FirstValue decodes the value of the first element of resps.
func FirstValue(resps []Response, v any) error {
	if len(resps) == 0 {
		return ErrEmptyResponse
	}
	return resps[0].Decode(v)
}

// Find returns the first element answering cmd.
func Find(resps []Response, cmd string) (Response, bool) {
	for _, r := range resps {
		if r.Cmd == cmd {
			return r, true
		}
	}
	return Response{}, false
}
