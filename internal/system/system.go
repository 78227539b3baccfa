// Package system exposes the camera's general system commands: time,
// device information, performance and reboot.
package system

import (
	"fmt"

	"reolink-cli/pkg/models"
)

// Executor sends a command body to the camera and returns the decoded
// response array. When multi is set the body is a batch and the command
// name is informational only.
type Executor interface {
	ExecuteCommand(command string, body []models.Command, multi bool) ([]models.Response, error)
}

// API issues system commands through an Executor. It holds no state of its
// own.
type API struct {
	exec Executor
}

func New(exec Executor) *API {
	return &API{exec: exec}
}

// GetGeneralSystem fetches the time settings and video norm in one batch.
func (a *API) GetGeneralSystem() ([]models.Response, error) {
	body := []models.Command{
		models.NewCommand("GetTime", 1, nil),
		models.NewCommand("GetNorm", 1, nil),
	}
	return a.exec.ExecuteCommand("get_general_system", body, true)
}

// GetTime returns the current time and DST settings.
func (a *API) GetTime() (*models.TimeSettings, error) {
	body := []models.Command{models.NewCommand("GetTime", 1, nil)}
	resps, err := a.exec.ExecuteCommand("GetTime", body, false)
	if err != nil {
		return nil, err
	}

	var settings models.TimeSettings
	if err := models.FirstValue(resps, &settings); err != nil {
		return nil, fmt.Errorf("failed to get time: %w", err)
	}
	return &settings, nil
}

// SetTime is not supported yet. Use UpdateTime.
func (a *API) SetTime(models.TimeSettings) ([]models.Response, error) {
	return nil, fmt.Errorf("SetTime: %w", ErrNotImplemented)
}

// UpdateTime sets the camera clock, keeping the current display format,
// time zone and DST rules.
func (a *API) UpdateTime(year, month, day, hour, minute, second int) ([]models.Response, error) {
	if err := validateTime(month, day, hour, minute, second); err != nil {
		return nil, err
	}

	current, err := a.GetTime()
	if err != nil {
		return nil, err
	}

	param := models.TimeSettings{
		Dst: current.Dst,
		Time: models.Time{
			Year:     year,
			Mon:      month,
			Day:      day,
			Hour:     hour,
			Min:      minute,
			Sec:      second,
			HourFmt:  current.Time.HourFmt,
			TimeFmt:  current.Time.TimeFmt,
			TimeZone: current.Time.TimeZone,
		},
	}

	body := []models.Command{models.NewCommand("SetTime", 0, param)}
	return a.exec.ExecuteCommand("SetTime", body, true)
}

// GetPerformance returns a snapshot of CPU, codec and network load.
func (a *API) GetPerformance() ([]models.Response, error) {
	body := []models.Command{models.NewCommand("GetPerformance", 0, nil)}
	return a.exec.ExecuteCommand("GetPerformance", body, false)
}

// GetInformation returns model, firmware, serial etc.
func (a *API) GetInformation() ([]models.Response, error) {
	body := []models.Command{models.NewCommand("GetDevInfo", 0, nil)}
	return a.exec.ExecuteCommand("GetDevInfo", body, false)
}

func (a *API) RebootCamera() ([]models.Response, error) {
	body := []models.Command{models.NewCommand("Reboot", 0, nil)}
	return a.exec.ExecuteCommand("Reboot", body, false)
}

// GetDst returns the DST settings. The device has no dedicated DST query,
// so this sends GetTime and the caller reads the Dst block.
func (a *API) GetDst() ([]models.Response, error) {
	body := []models.Command{models.NewCommand("GetTime", 0, nil)}
	return a.exec.ExecuteCommand("GetTime", body, false)
}
