package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rzbill/sift/internal/logstore"
)

// NewTopicCommand manages topics in the embedded log store.
func NewTopicCommand(logger *zap.Logger) *cobra.Command {
	topicCmd := &cobra.Command{Use: "topic", Short: "Topic operations on the embedded store"}

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			partitions, _ := cmd.Flags().GetUint32("partitions")
			rt, _, err := openRuntime(cmd, logger)
			if err != nil {
				return err
			}
			defer rt.Close()
			if err := rt.LogStore().CreateTopic(args[0], partitions); err != nil {
				return err
			}
			fmt.Printf("topic %s created with %d partitions\n", args[0], partitions)
			return nil
		},
	}
	createCmd.Flags().Uint32("partitions", 1, "Partition count")
	AddCommonFlags(createCmd)
	topicCmd.AddCommand(createCmd)

	appendCmd := &cobra.Command{
		Use:   "append <name>",
		Short: "Append JSON records to one partition of a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			partition, _ := cmd.Flags().GetUint32("partition")
			values, _ := cmd.Flags().GetStringArray("value")
			if len(values) == 0 {
				return errors.New("at least one --value is required")
			}
			recs := make([]logstore.AppendRecord, 0, len(values))
			for _, v := range values {
				if !json.Valid([]byte(v)) {
					return fmt.Errorf("value is not valid JSON: %s", v)
				}
				recs = append(recs, logstore.AppendRecord{Value: []byte(v)})
			}
			rt, _, err := openRuntime(cmd, logger)
			if err != nil {
				return err
			}
			defer rt.Close()
			offs, err := rt.LogStore().Append(cmd.Context(), args[0], partition, recs)
			if err != nil {
				return err
			}
			fmt.Printf("appended %d records at offsets %v\n", len(offs), offs)
			return nil
		},
	}
	appendCmd.Flags().Uint32("partition", 0, "Target partition")
	appendCmd.Flags().StringArray("value", nil, "Record value (JSON object); repeatable")
	AddCommonFlags(appendCmd)
	topicCmd.AddCommand(appendCmd)

	return topicCmd
}
