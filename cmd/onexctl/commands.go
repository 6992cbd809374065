package main

import (
	"fmt"
	"strconv"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/engine"
	"github.com/gasparian/onex-go/tsview"
	"github.com/spf13/cobra"
)

// newRootCommand builds a fresh cobra command tree bound to s. A new tree
// is built per REPL line rather than reused, since cobra commands are not
// meant to be re-Execute()'d with different flag values.
func (s *shell) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "onex",
		Short:         "Welcome to onex! Use 'help' to see the list of available commands.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		s.loadCmd(),
		s.saveCmd(),
		s.unloadCmd(),
		s.listCmd(),
		s.timerCmd(),
		s.groupCmd(),
		s.saveGroupCmd(),
		s.loadGroupCmd(),
		s.normalizeCmd(),
		s.paaCmd(),
		s.matchCmd(),
	)
	return root
}

func (s *shell) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <filePath> [<maxNumRow> <startCol> <separators>]",
		Short: "Load a dataset into memory",
		Args:  cobra.RangeArgs(1, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxRows, startCol := 0, 0
			separators := " "
			var err error
			if len(args) > 1 {
				if maxRows, err = strconv.Atoi(args[1]); err != nil {
					return common.NewError(common.KindUnparsable, "maxNumRow must be an integer")
				}
			}
			if len(args) > 2 {
				if startCol, err = strconv.Atoi(args[2]); err != nil {
					return common.NewError(common.KindUnparsable, "startCol must be an integer")
				}
			}
			if len(args) > 3 {
				separators = args[3]
			}

			ds, err := engine.LoadFromFile[float64](args[0], maxRows, startCol, separators)
			if err != nil {
				return err
			}
			handle := s.reg.Load(ds)
			label, _ := s.reg.Label(handle)
			fmt.Fprintf(cmd.OutOrStdout(), "Dataset loaded\n  Handle:      %d\n  Label:       %s\n%s", handle, label, datasetInfoLine("", ds.Info()))
			return nil
		},
	}
}

func (s *shell) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <handle> <filePath> [<separator>]",
		Short: "Save a dataset from memory to disk",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := strconv.Atoi(args[0])
			if err != nil {
				return common.NewError(common.KindUnparsable, "handle must be an integer")
			}
			sep := byte(' ')
			if len(args) == 3 && len(args[2]) > 0 {
				sep = args[2][0]
			}
			ds, err := s.reg.Get(handle)
			if err != nil {
				return err
			}
			if err := ds.SaveDataset(args[1], sep); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved dataset %d to %s\n", handle, args[1])
			return nil
		},
	}
}

func (s *shell) unloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unload <handle>",
		Short: "Unload a dataset from memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := strconv.Atoi(args[0])
			if err != nil {
				return common.NewError(common.KindUnparsable, "handle must be an integer")
			}
			if err := s.reg.Unload(handle); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dataset %d is unloaded\n", handle)
			return nil
		},
	}
}

func (s *shell) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list dataset|distance",
		Short: "List loaded datasets or available distances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "dataset":
				infos := s.reg.List()
				fmt.Fprintf(out, "There are %d loaded datasets\n\n", len(infos))
				for _, hi := range infos {
					status := ""
					if hi.Info.IsNormalized {
						status += "Normalized "
					}
					if hi.Info.IsGrouped {
						status += "Grouped"
					}
					fmt.Fprintf(out, "  %4d [%s] %s\t%s\n", hi.Handle, hi.Label, hi.Info.FilePath, status)
				}
			case "distance":
				fmt.Fprintln(out, "  euclidean")
				fmt.Fprintln(out, "  euclidean_dtw")
			default:
				return common.NewError(common.KindInvalidArgument, "unknown object: "+args[0])
			}
			return nil
		},
	}
}

func (s *shell) timerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timer [on|off]",
		Short: "Turn timer on or off",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				state := "OFF"
				if s.timerEnabled {
					state = "ON"
				}
				fmt.Fprintf(out, "Timer is %s\n", state)
				return nil
			}
			switch args[0] {
			case "on":
				s.timerEnabled = true
				fmt.Fprintln(out, "Timer is ON")
			case "off":
				s.timerEnabled = false
				fmt.Fprintln(out, "Timer is OFF")
			default:
				return common.NewError(common.KindInvalidArgument, "argument for timer must be 'on' or 'off'")
			}
			return nil
		},
	}
}

func (s *shell) groupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "group <handle> <threshold>",
		Short: "Group a dataset in memory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := strconv.Atoi(args[0])
			if err != nil {
				return common.NewError(common.KindUnparsable, "handle must be an integer")
			}
			threshold, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return common.NewError(common.KindUnparsable, "threshold must be a number")
			}
			ds, err := s.reg.Get(handle)
			if err != nil {
				return err
			}

			count := -1
			err = s.timed(func() error {
				bar := progressReporter(true, ds.Info().ItemCount*ds.Info().ItemLength)
				n, err := ds.BuildIndex(threshold, s.cfg.WarpingBandRatio, func(delta int) { bar.Add(delta) })
				bar.Finish()
				count = n
				return err
			})
			if err != nil {
				return err
			}
			s.reg.SetBuildStatus(handle)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Dataset %d is now grouped\n", handle)
			fmt.Fprintf(out, "Number of Groups: %d\n", count)
			return nil
		},
	}
}

func (s *shell) saveGroupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "saveGroup <handle> <path> [<groupSizeOnly>]",
		Short: "Save groups of a grouped dataset",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := strconv.Atoi(args[0])
			if err != nil {
				return common.NewError(common.KindUnparsable, "handle must be an integer")
			}
			groupSizeOnly := false
			if len(args) == 3 {
				groupSizeOnly = args[2] == "1"
			}
			ds, err := s.reg.Get(handle)
			if err != nil {
				return err
			}
			if err := ds.SaveIndex(args[1], groupSizeOnly); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved groups of dataset %d to %s\n", handle, args[1])
			return nil
		},
	}
}

func (s *shell) loadGroupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loadGroup <handle> <path>",
		Short: "Load saved groups into a compatible dataset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := strconv.Atoi(args[0])
			if err != nil {
				return common.NewError(common.KindUnparsable, "handle must be an integer")
			}
			ds, err := s.reg.Get(handle)
			if err != nil {
				return err
			}
			n, err := ds.LoadIndex(args[1], s.cfg.WarpingBandRatio)
			if err != nil {
				return err
			}
			s.reg.SetBuildStatus(handle)
			fmt.Fprintf(cmd.OutOrStdout(), "%d groups loaded for dataset %d\n", n, handle)
			return nil
		},
	}
}

func (s *shell) normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <handle>",
		Short: "Normalize a dataset (cannot be undone)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := strconv.Atoi(args[0])
			if err != nil {
				return common.NewError(common.KindUnparsable, "handle must be an integer")
			}
			ds, err := s.reg.Get(handle)
			if err != nil {
				return err
			}
			if _, _, err := ds.Normalize(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dataset %d is now normalized\n", handle)
			return nil
		},
	}
}

func (s *shell) paaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paa <handle> <blockSize>",
		Short: "Piecewise aggregate approximation (cannot be undone)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := strconv.Atoi(args[0])
			if err != nil {
				return common.NewError(common.KindUnparsable, "handle must be an integer")
			}
			block, err := strconv.Atoi(args[1])
			if err != nil {
				return common.NewError(common.KindUnparsable, "blockSize must be an integer")
			}
			ds, err := s.reg.Get(handle)
			if err != nil {
				return err
			}
			if err := ds.PAA(block); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), datasetInfoLine("Dataset PAA-ed", ds.Info()))
			return nil
		},
	}
}

func (s *shell) matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <resultHandle> <queryHandle> <tsIndex> [<start> <end>]",
		Short: "Find the best match of a time series",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 3 || len(args) == 5 {
				return nil
			}
			return common.NewError(common.KindInvalidArgument, "start and end must be given together")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			resultHandle, err := strconv.Atoi(args[0])
			if err != nil {
				return common.NewError(common.KindUnparsable, "resultHandle must be an integer")
			}
			queryHandle, err := strconv.Atoi(args[1])
			if err != nil {
				return common.NewError(common.KindUnparsable, "queryHandle must be an integer")
			}
			tsIndex, err := strconv.Atoi(args[2])
			if err != nil {
				return common.NewError(common.KindUnparsable, "tsIndex must be an integer")
			}
			start, end := -1, -1
			if len(args) == 5 {
				if start, err = strconv.Atoi(args[3]); err != nil {
					return common.NewError(common.KindUnparsable, "start must be an integer")
				}
				if end, err = strconv.Atoi(args[4]); err != nil {
					return common.NewError(common.KindUnparsable, "end must be an integer")
				}
			}

			result, err := s.reg.Get(resultHandle)
			if err != nil {
				return err
			}
			queryDataset, err := s.reg.Get(queryHandle)
			if err != nil {
				return err
			}
			query, err := queryDataset.TimeSeries(tsIndex, start, end)
			if err != nil {
				return err
			}

			var best tsview.View[float64]
			var dist float64
			err = s.timed(func() error {
				b, d, err := result.BestMatch(query)
				if err != nil {
					return err
				}
				best = b
				dist = d
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Best Match is timeseries %d starting at %d with length %d. Distance = %v\n",
				best.Index(), best.Start(), best.Len(), dist)
			return nil
		},
	}
}
