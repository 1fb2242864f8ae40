package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/service-sdk/go-sdk-qn-manager/api.v7/kodo"
)

func newStatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stat <bucket> <key>",
		Short: "Show the metadata of a file",
		Args:  cobra.ExactArgs(2),
		RunE: opts.withManager(func(ctx context.Context, cmd *cobra.Command, m *kodo.BucketManager, args []string) error {
			info, err := m.Stat(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			putTime := putTimeOf(info.PutTime)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Key:      %s\n", args[1])
			fmt.Fprintf(out, "Hash:     %s\n", info.Hash)
			fmt.Fprintf(out, "Size:     %s (%d bytes)\n", humanize.IBytes(uint64(info.Fsize)), info.Fsize)
			fmt.Fprintf(out, "PutTime:  %s (%s)\n", putTime.Format(time.RFC3339), humanize.Time(putTime))
			fmt.Fprintf(out, "MimeType: %s\n", info.MimeType)
			fmt.Fprintf(out, "Type:     %d\n", info.Type)
			if info.EndUser != "" {
				fmt.Fprintf(out, "EndUser:  %s\n", info.EndUser)
			}
			return nil
		}),
	}
}

func newRmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <bucket> <key>...",
		Short: "Delete files, more than one key is sent as a batch",
		Args:  cobra.MinimumNArgs(2),
		RunE: opts.withManager(func(ctx context.Context, cmd *cobra.Command, m *kodo.BucketManager, args []string) error {
			if len(args) == 2 {
				return m.Delete(ctx, args[0], args[1])
			}
			keys := args[1:]
			rets, err := m.BatchChunked(ctx, kodo.NewBatch().Delete(args[0], keys...))
			if err != nil {
				return err
			}
			return printBatchResults(cmd.OutOrStdout(), keys, rets)
		}),
	}
}

func newCpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cp <srcBucket> <srcKey> <destBucket> <destKey>",
		Short: "Copy a file",
		Args:  cobra.ExactArgs(4),
		RunE: opts.withManager(func(ctx context.Context, cmd *cobra.Command, m *kodo.BucketManager, args []string) error {
			return m.Copy(ctx, args[0], args[1], args[2], args[3])
		}),
	}
}

func newMvCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <srcBucket> <srcKey> <destBucket> <destKey>",
		Short: "Move a file",
		Args:  cobra.ExactArgs(4),
		RunE: opts.withManager(func(ctx context.Context, cmd *cobra.Command, m *kodo.BucketManager, args []string) error {
			return m.Move(ctx, args[0], args[1], args[2], args[3])
		}),
	}
}

func newRenameCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <bucket> <oldKey> <newKey>",
		Short: "Rename a file inside its bucket",
		Args:  cobra.ExactArgs(3),
		RunE: opts.withManager(func(ctx context.Context, cmd *cobra.Command, m *kodo.BucketManager, args []string) error {
			return m.Rename(ctx, args[0], args[1], args[2])
		}),
	}
}

func newChgmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chgm <bucket> <key> <mime>",
		Short: "Change the mime type of a file",
		Args:  cobra.ExactArgs(3),
		RunE: opts.withManager(func(ctx context.Context, cmd *cobra.Command, m *kodo.BucketManager, args []string) error {
			return m.ChangeMime(ctx, args[0], args[1], args[2])
		}),
	}
}

func newChtypeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chtype <bucket> <key> <type>",
		Short: "Change the storage type of a file (0 normal, 1 line, 2 archive)",
		Args:  cobra.ExactArgs(3),
		RunE: opts.withManager(func(ctx context.Context, cmd *cobra.Command, m *kodo.BucketManager, args []string) error {
			fileType, err := strconv.ParseUint(args[2], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid file type %q: %w", args[2], err)
			}
			return m.ChangeType(ctx, args[0], args[1], kodo.FileType(fileType))
		}),
	}
}

func newFetchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <url> <bucket> [key]",
		Short: "Ask the service to fetch a remote url into a bucket",
		Args:  cobra.RangeArgs(2, 3),
		RunE: opts.withManager(func(ctx context.Context, cmd *cobra.Command, m *kodo.BucketManager, args []string) error {
			if len(args) == 2 {
				return m.FetchWithoutKey(ctx, args[0], args[1])
			}
			return m.Fetch(ctx, args[0], args[1], args[2])
		}),
	}
}

func newPrefetchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "prefetch <bucket> <key>",
		Short: "Refresh a mirrored file from the bucket's origin",
		Args:  cobra.ExactArgs(2),
		RunE: opts.withManager(func(ctx context.Context, cmd *cobra.Command, m *kodo.BucketManager, args []string) error {
			return m.Prefetch(ctx, args[0], args[1])
		}),
	}
}
