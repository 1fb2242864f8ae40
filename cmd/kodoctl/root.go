package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/service-sdk/go-sdk-qn-manager/api.v7/kodo"
	"github.com/service-sdk/go-sdk-qn-manager/operation"
	"github.com/service-sdk/go-sdk-qn-manager/x/log.v7"
)

type options struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "kodoctl",
		Short: "kodoctl - manage buckets and files of qiniu kodo",
		Long: `kodoctl lists buckets and files and runs management operations
(stat, delete, copy, move, change mime/type, fetch, prefetch, batch) against kodo.

Credentials and hosts are read from the file given by --config, or from the file
named by the QINIU environment variable when --config is not given.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutputLevel(log.ParseLevel(opts.logLevel))
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file, .toml or .json (default "+operation.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newBucketsCmd(opts),
		newLsCmd(opts),
		newStatCmd(opts),
		newRmCmd(opts),
		newCpCmd(opts),
		newMvCmd(opts),
		newRenameCmd(opts),
		newChgmCmd(opts),
		newChtypeCmd(opts),
		newFetchCmd(opts),
		newPrefetchCmd(opts),
		newBatchCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

func (o *options) bucketManager() (*kodo.BucketManager, error) {
	if o.configPath == "" && os.Getenv(operation.QINIU_ENV) != "" {
		return operation.NewBucketManagerV2()
	}
	path := o.configPath
	if path == "" {
		path = operation.DefaultConfigPath()
	}
	config, err := operation.Load(path)
	if err != nil {
		return nil, err
	}
	return operation.NewBucketManager(config)
}

// withManager 包装需要管理客户端的子命令
func (o *options) withManager(
	run func(ctx context.Context, cmd *cobra.Command, m *kodo.BucketManager, args []string) error,
) func(cmd *cobra.Command, args []string) error {

	return func(cmd *cobra.Command, args []string) error {
		m, err := o.bucketManager()
		if err != nil {
			return err
		}
		return run(cmd.Context(), cmd, m, args)
	}
}
