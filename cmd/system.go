package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reolink-cli/pkg/models"
)

var rebootYes bool

var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "Device information, performance and control",
}

var systemInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show model, firmware and serial number",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newSystemAPI()
		if err != nil {
			return err
		}

		resps, err := api.GetInformation()
		if err != nil {
			return err
		}

		var v models.DevInfoValue
		if err := models.FirstValue(resps, &v); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), v.DevInfo)
		}

		info := v.DevInfo
		w := newTable(cmd.OutOrStdout())
		fmt.Fprintln(w, "NAME\tMODEL\tSERIAL\tFIRMWARE\tHARDWARE\tCHANNELS")
		fmt.Fprintln(w, "----\t-----\t------\t--------\t--------\t--------")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			info.Name,
			info.Model,
			info.Serial,
			info.FirmVer,
			info.HardVer,
			info.ChannelNum,
		)
		w.Flush()
		return nil
	},
}

var systemPerformanceCmd = &cobra.Command{
	Use:   "performance",
	Short: "Show CPU, codec and network load",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newSystemAPI()
		if err != nil {
			return err
		}

		resps, err := api.GetPerformance()
		if err != nil {
			return err
		}

		var v models.PerformanceValue
		if err := models.FirstValue(resps, &v); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), v.Performance)
		}

		w := newTable(cmd.OutOrStdout())
		fmt.Fprintln(w, "CPU %\tCODEC KBPS\tNET KBPS")
		fmt.Fprintln(w, "-----\t----------\t--------")
		fmt.Fprintf(w, "%d\t%d\t%d\n", v.Performance.CPUUsed, v.Performance.CodecRate, v.Performance.NetThroughput)
		w.Flush()
		return nil
	},
}

var systemGeneralCmd = &cobra.Command{
	Use:   "general",
	Short: "Show time settings and video norm in one request",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newSystemAPI()
		if err != nil {
			return err
		}

		resps, err := api.GetGeneralSystem()
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), resps)
		}

		timeResp, ok := models.Find(resps, "GetTime")
		if !ok {
			return errors.New("camera did not answer GetTime")
		}
		var settings models.TimeSettings
		if err := timeResp.Decode(&settings); err != nil {
			return err
		}

		normResp, ok := models.Find(resps, "GetNorm")
		if !ok {
			return errors.New("camera did not answer GetNorm")
		}
		var norm models.NormValue
		if err := normResp.Decode(&norm); err != nil {
			return err
		}

		printTimeSettings(cmd.OutOrStdout(), settings)
		fmt.Fprintf(cmd.OutOrStdout(), "\nVideo norm: %s\n", norm.Norm)
		return nil
	},
}

var systemDstCmd = &cobra.Command{
	Use:   "dst",
	Short: "Show daylight saving rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newSystemAPI()
		if err != nil {
			return err
		}

		resps, err := api.GetDst()
		if err != nil {
			return err
		}

		var settings models.TimeSettings
		if err := models.FirstValue(resps, &settings); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), settings.Dst)
		}

		d := settings.Dst
		w := newTable(cmd.OutOrStdout())
		fmt.Fprintln(w, "ENABLED\tOFFSET\tSTART (MON/WEEK/DAY HH:MM)\tEND (MON/WEEK/DAY HH:MM)")
		fmt.Fprintln(w, "-------\t------\t--------------------------\t------------------------")
		fmt.Fprintf(w, "%t\t%dh\t%d/%d/%d %02d:%02d\t%d/%d/%d %02d:%02d\n",
			d.Enable != 0,
			d.Offset,
			d.StartMon, d.StartWeek, d.StartWeekday, d.StartHour, d.StartMin,
			d.EndMon, d.EndWeek, d.EndWeekday, d.EndHour, d.EndMin,
		)
		w.Flush()
		return nil
	},
}

var systemRebootCmd = &cobra.Command{
	Use:     "reboot",
	Short:   "Reboot the camera",
	Example: `  reolink-cli system reboot --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !rebootYes {
			return errors.New("refusing to reboot without --yes")
		}

		api, err := newSystemAPI()
		if err != nil {
			return err
		}

		resps, err := api.RebootCamera()
		if err != nil {
			return err
		}

		var ack models.Ack
		if err := models.FirstValue(resps, &ack); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), ack)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Reboot requested.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(systemCmd)

	systemCmd.AddCommand(systemInfoCmd)
	systemCmd.AddCommand(systemPerformanceCmd)
	systemCmd.AddCommand(systemGeneralCmd)
	systemCmd.AddCommand(systemDstCmd)
	systemCmd.AddCommand(systemRebootCmd)

	systemRebootCmd.Flags().BoolVar(&rebootYes, "yes", false, "Confirm the reboot")
}
