package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/service-sdk/go-sdk-qn-manager/api.v7/kodo"
)

func newBucketsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "buckets",
		Short: "List all buckets",
		Args:  cobra.NoArgs,
		RunE: opts.withManager(func(ctx context.Context, cmd *cobra.Command, m *kodo.BucketManager, args []string) error {
			buckets, err := m.Buckets(ctx)
			if err != nil {
				return err
			}
			for _, bucket := range buckets {
				fmt.Fprintln(cmd.OutOrStdout(), bucket)
			}
			return nil
		}),
	}
}

func newLsCmd(opts *options) *cobra.Command {
	var (
		limit     int
		delimiter string
	)
	cmd := &cobra.Command{
		Use:   "ls <bucket> [prefix]",
		Short: "List files of a bucket page by page",
		Args:  cobra.RangeArgs(1, 2),
		RunE: opts.withManager(func(ctx context.Context, cmd *cobra.Command, m *kodo.BucketManager, args []string) error {
			var prefix string
			if len(args) > 1 {
				prefix = args[1]
			}
			it, err := m.NewFileListIteratorWithLimit(args[0], prefix, limit, delimiter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var count int
			for it.HasNext() {
				page := it.Next(ctx)
				if page.State != kodo.PageItems {
					break
				}
				for _, p := range page.CommonPrefixes {
					fmt.Fprintf(out, "%s\tPRE\n", p)
				}
				for _, item := range page.Items {
					printListItem(out, item)
				}
				count += len(page.Items)
			}
			if err = it.Err(); err != nil {
				return err
			}
			fmt.Fprintf(out, "total %s files\n", humanize.Comma(int64(count)))
			return nil
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", kodo.DefaultListLimit, "Max files per listing request")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", "Group keys by this delimiter, e.g. /")
	return cmd
}

// putTime 以 100 纳秒为单位
func putTimeOf(putTime int64) time.Time {
	return time.Unix(0, putTime*100)
}

func printListItem(out io.Writer, item kodo.ListItem) {
	fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n",
		item.Key,
		humanize.IBytes(uint64(item.Fsize)),
		item.Hash,
		putTimeOf(item.PutTime).Format(time.RFC3339),
		item.MimeType,
	)
}
