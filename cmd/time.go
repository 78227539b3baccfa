package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"reolink-cli/internal/system"
	"reolink-cli/pkg/models"
)

var (
	setYear   int
	setMonth  int
	setDay    int
	setHour   int
	setMinute int
	setSecond int
	setNow    bool
)

var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Read or change the camera clock",
}

var timeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the camera time, format and DST settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newSystemAPI()
		if err != nil {
			return err
		}

		settings, err := api.GetTime()
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), settings)
		}
		printTimeSettings(cmd.OutOrStdout(), *settings)
		return nil
	},
}

var timeUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Set the camera date and time",
	Long: `Sets the camera date and time. The display format, time zone and DST
rules already configured on the camera are kept.`,
	Example: `  reolink-cli time update --year 2024 --month 2 --day 29 --hour 23 --minute 59 --second 59
  reolink-cli time update --now`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if setNow {
			now := time.Now()
			setYear, setMonth, setDay = now.Year(), int(now.Month()), now.Day()
			setHour, setMinute, setSecond = now.Hour(), now.Minute(), now.Second()
		} else {
			for _, name := range []string{"year", "month", "day", "hour", "minute", "second"} {
				if !cmd.Flags().Changed(name) {
					return fmt.Errorf("--%s is required unless --now is given", name)
				}
			}
		}

		api, err := newSystemAPI()
		if err != nil {
			return err
		}

		resps, err := api.UpdateTime(setYear, setMonth, setDay, setHour, setMinute, setSecond)
		if err != nil {
			return err
		}

		var ack models.Ack
		if err := models.FirstValue(resps, &ack); err != nil {
			return fmt.Errorf("camera rejected the new time: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), resps)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Camera time set to %04d-%02d-%02d %02d:%02d:%02d.\n",
			setYear, setMonth, setDay, setHour, setMinute, setSecond)
		return nil
	},
}

var timeSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the full time settings (not implemented)",
	RunE: func(cmd *cobra.Command, args []string) error {
		// SetTime never reaches the camera, so no session is needed.
		_, err := system.New(nil).SetTime(models.TimeSettings{})
		return errors.Join(err, errors.New("use 'reolink-cli time update' instead"))
	},
}

func printTimeSettings(w io.Writer, s models.TimeSettings) {
	t := s.Time
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tTIME\tHOUR FMT\tDATE FMT\tTZ OFFSET\tDST")
	fmt.Fprintln(tw, "----\t----\t--------\t--------\t---------\t---")

	hourFmt := "24h"
	if t.HourFmt == 1 {
		hourFmt = "12h"
	}
	dst := "off"
	if s.Dst.Enable != 0 {
		dst = fmt.Sprintf("+%dh", s.Dst.Offset)
	}

	fmt.Fprintf(tw, "%04d-%02d-%02d\t%02d:%02d:%02d\t%s\t%s\t%ds\t%s\n",
		t.Year, t.Mon, t.Day,
		t.Hour, t.Min, t.Sec,
		hourFmt,
		t.TimeFmt,
		t.TimeZone,
		dst,
	)
	tw.Flush()
}

func init() {
	rootCmd.AddCommand(timeCmd)

	timeCmd.AddCommand(timeGetCmd)
	timeCmd.AddCommand(timeUpdateCmd)
	timeCmd.AddCommand(timeSetCmd)

	timeUpdateCmd.Flags().IntVar(&setYear, "year", 0, "Year, e.g. 2024")
	timeUpdateCmd.Flags().IntVar(&setMonth, "month", 0, "Month (1-12)")
	timeUpdateCmd.Flags().IntVar(&setDay, "day", 0, "Day of month (1-31)")
	timeUpdateCmd.Flags().IntVar(&setHour, "hour", 0, "Hour (0-23)")
	timeUpdateCmd.Flags().IntVar(&setMinute, "minute", 0, "Minute (0-59)")
	timeUpdateCmd.Flags().IntVar(&setSecond, "second", 0, "Second (0-59)")
	timeUpdateCmd.Flags().BoolVar(&setNow, "now", false, "Use this machine's local time")
}
