package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/service-sdk/go-sdk-qn-manager/api.v7/kodo"
)

func newBatchCmd(opts *options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "batch -f <file>",
		Short: "Run the operations listed in a file as batch requests",
		Long: `Each non-empty line of the file is one operation, fields are separated by tabs
when the line contains a tab and by spaces otherwise. Lines starting with # are ignored.

  copy   <srcBucket> <srcKey> <destBucket> <destKey>
  move   <srcBucket> <srcKey> <destBucket> <destKey>
  rename <bucket> <oldKey> <newKey>
  delete <bucket> <key>
  stat   <bucket> <key>

Use - as the file to read from stdin.`,
		Args: cobra.NoArgs,
		RunE: opts.withManager(func(ctx context.Context, cmd *cobra.Command, m *kodo.BucketManager, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			batch, lines, err := parseBatch(r)
			if err != nil {
				return err
			}
			if batch.Len() == 0 {
				return errors.New("no operations in batch file")
			}
			rets, err := m.BatchChunked(ctx, batch)
			if err != nil {
				return err
			}
			return printBatchResults(cmd.OutOrStdout(), lines, rets)
		}),
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Batch file, - for stdin")
	cmd.MarkFlagRequired("file")
	return cmd
}

func splitBatchLine(line string) []string {
	if strings.Contains(line, "\t") {
		return strings.Split(line, "\t")
	}
	return strings.Fields(line)
}

// parseBatch 解析批量操作文件，返回的 lines 与 batch 中的操作一一对应
func parseBatch(r io.Reader) (*kodo.Batch, []string, error) {
	batch := kodo.NewBatch()
	var lines []string

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := splitBatchLine(line)
		op, args := fields[0], fields[1:]
		want := map[string]int{"copy": 4, "move": 4, "rename": 3, "delete": 2, "stat": 2}[op]
		if want == 0 {
			return nil, nil, fmt.Errorf("line %d: unknown operation %q", lineNo, op)
		}
		if len(args) != want {
			return nil, nil, fmt.Errorf("line %d: %s expects %d arguments, got %d", lineNo, op, want, len(args))
		}
		switch op {
		case "copy":
			batch.Copy(args[0], args[1], args[2], args[3])
		case "move":
			batch.Move(args[0], args[1], args[2], args[3])
		case "rename":
			batch.Rename(args[0], args[1], args[2])
		case "delete":
			batch.Delete(args[0], args[1])
		case "stat":
			batch.Stat(args[0], args[1])
		}
		if err := batch.Err(); err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return batch, lines, nil
}

// printBatchResults 每行输出一个操作的结果，存在失败的操作时返回错误
func printBatchResults(out io.Writer, names []string, rets []kodo.BatchOpRet) error {
	var failed int
	for i, ret := range rets {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		if ret.Code == 200 {
			fmt.Fprintf(out, "%d\t%s\n", ret.Code, name)
			continue
		}
		failed++
		fmt.Fprintf(out, "%d\t%s\t%s\n", ret.Code, name, ret.Data.Error)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d operations failed", failed, len(rets))
	}
	return nil
}
