package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gajzzs/usbprep/internal/device"
	"github.com/gajzzs/usbprep/internal/selection"
	"github.com/gajzzs/usbprep/internal/system"
	"github.com/gajzzs/usbprep/internal/ui"
)

func NewScanCommand(env *Env) *cobra.Command {
	var asJSON, details bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List removable USB devices and their risk status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := scan(env)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return ui.PrintJSON(out, devices)
			}
			if len(devices) == 0 {
				env.Logger.Info("No removable USB devices found")
				return nil
			}
			if details {
				printDeviceDetails(out, devices)
				return nil
			}
			printDeviceTable(out, devices)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print devices as JSON")
	cmd.Flags().BoolVarP(&details, "details", "d", false, "Print every field and warning per device")
	return cmd
}

func NewSelectCommand(env *Env) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Interactively choose a target device",
		Long: "Shows the removable devices, asks for one and requires the confirmation token " +
			"for devices that carry warnings. The chosen device's primary mount point (or its ID " +
			"when nothing is mounted) is printed to stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			warnIfNotElevated(env)

			prompt := ui.NewLineUI(cmd.InOrStdin(), cmd.ErrOrStderr())
			selector := selection.New(enumerationHint{env}, prompt, env.Config.ConfirmationToken).
				WithRenderer(tableRenderer(cmd.ErrOrStderr()))

			dev, err := selector.Choose(id)
			if errors.Is(err, selection.ErrAborted) {
				env.Logger.Info("No device selected")
				return nil
			}
			if err != nil {
				return err
			}

			env.Logger.Success("Selected disk %d: %s (%s)", dev.Index, dev.Model, system.FormatSize(dev.SizeBytes))
			if v, ok := dev.PrimaryVolume(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), v.MountPoint)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), dev.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Preselect a device by ID or ID prefix")
	return cmd
}

func NewStatusCommand(env *Env) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show host details and inventory prerequisites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			host := system.GetHostSummary()
			missing := env.Executor.MissingCommands(system.InventoryTools())

			out := cmd.OutOrStdout()
			if asJSON {
				return ui.PrintJSON(out, struct {
					system.HostSummary
					Config       string   `json:"config"`
					MissingTools []string `json:"missing_tools"`
				}{host, env.ConfigPath, missing})
			}

			fmt.Fprintf(out, "Host: %s\n", host.Hostname)
			fmt.Fprintf(out, "OS: %s %s %s (%s)\n", host.OS, host.Platform, host.PlatformVersion, host.KernelArch)
			fmt.Fprintf(out, "Elevated: %t\n", host.Elevated)
			fmt.Fprintf(out, "Config: %s\n", env.ConfigPath)

			if !host.Elevated {
				env.Logger.Warning("Not running with administrator privileges; some disks may be hidden")
			}
			if len(missing) > 0 {
				env.Logger.Error("Missing inventory tools: %v", missing)
				return fmt.Errorf("%d required tool(s) not found in PATH", len(missing))
			}
			env.Logger.Success("All inventory tools available")
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print status as JSON")
	return cmd
}

func NewConfigCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.Config.Save(env.ConfigPath, force); err != nil {
				return err
			}
			env.Logger.Success("Configuration written to %s", env.ConfigPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				env.Logger.Debug("Config path: %s", env.ConfigPath)
				return ui.PrintJSON(cmd.OutOrStdout(), env.Config)
			},
		},
		initCmd,
	)

	return cmd
}

func scan(env *Env) ([]device.RemovableDevice, error) {
	warnIfNotElevated(env)
	return enumerationHint{env}.ScanRemovableDevices()
}

// enumerationHint adds a privilege hint to inventory failures.
type enumerationHint struct {
	env *Env
}

func (h enumerationHint) ScanRemovableDevices() ([]device.RemovableDevice, error) {
	devices, err := h.env.Scanner().ScanRemovableDevices()
	var enumErr *device.EnumerationError
	if errors.As(err, &enumErr) && !system.IsElevated() {
		h.env.Logger.Error("Device enumeration failed; retry as administrator/root")
	}
	return devices, err
}

func warnIfNotElevated(env *Env) {
	if !system.IsElevated() {
		env.Logger.Debug("Running without elevated privileges")
	}
}
