package main

import (
	"fmt"

	"github.com/rediwo/mongo-join/drivers/mongodb"
	"github.com/rediwo/mongo-join/populate"
	"github.com/rediwo/mongo-join/query"
	"github.com/rediwo/mongo-join/types"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
)

// queryFlags are the flags describing one query
type queryFlags struct {
	model    string
	find     string
	sort     string
	skip     int64
	populate []string
}

func addQueryFlags(cmd *cobra.Command, q *queryFlags) {
	f := cmd.Flags()
	f.StringVar(&q.model, "model", "", "model to query, e.g. Team")
	f.StringVar(&q.find, "find", "", `filter as extended JSON, e.g. '{"leader.age": {"$gt": 25}}'`)
	f.StringVar(&q.sort, "sort", "", `sort as extended JSON, e.g. '{"yearFounded": 1}'`)
	f.Int64Var(&q.skip, "skip", 0, "number of matches to skip")
	f.Int64("limit", 0, fmt.Sprintf("page size (default %d)", types.DefaultLimit))
	f.StringSliceVar(&q.populate, "populate", nil, "reference paths to populate, e.g. leader.studiedAt,members")
}

// options turns the flags into a model name and query options
func (a *app) options(q *queryFlags) (string, types.QueryOptions, error) {
	opts := a.conf.QueryOptions()
	opts.Skip = q.skip
	opts.Populate = q.populate

	model := q.model
	if model == "" {
		model = a.conf.Model
	}
	if model == "" {
		return "", opts, fmt.Errorf("--model is required")
	}

	if q.find != "" {
		if err := bson.UnmarshalExtJSON([]byte(q.find), false, &opts.Find); err != nil {
			return "", opts, fmt.Errorf("invalid --find: %w", err)
		}
	}
	if q.sort != "" {
		if err := bson.UnmarshalExtJSON([]byte(q.sort), false, &opts.Sort); err != nil {
			return "", opts, fmt.Errorf("invalid --sort: %w", err)
		}
	}
	return model, opts, nil
}

func (a *app) compileCmd() *cobra.Command {
	q := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Print the aggregation pipeline of a query without running it",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, opts, err := a.options(q)
			if err != nil {
				return err
			}
			reg, err := a.loadSchema()
			if err != nil {
				return err
			}

			pipeline, err := query.Compile(reg, model, opts)
			if err != nil {
				return err
			}
			return printJSON(cmd, bson.D{{Key: "pipeline", Value: pipeline}})
		},
	}
	addQueryFlags(cmd, q)
	return cmd
}

func (a *app) findCmd() *cobra.Command {
	q := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Run a query and print one page of results with the total count",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, opts, err := a.options(q)
			if err != nil {
				return err
			}
			reg, err := a.loadSchema()
			if err != nil {
				return err
			}

			db, err := mongodb.NewMongoDB(a.conf.DB)
			if err != nil {
				return err
			}
			db.SetLogger(a.log)

			ctx := cmd.Context()
			if err := db.Connect(ctx); err != nil {
				return err
			}
			defer db.Close()

			executor := query.NewExecutor(reg, db)
			executor.SetLogger(a.log)

			result, err := executor.Find(ctx, model, opts)
			if err != nil {
				return err
			}
			return printJSON(cmd, bson.D{
				{Key: "count", Value: result.Count},
				{Key: "results", Value: result.Results},
			})
		},
	}
	addQueryFlags(cmd, q)
	return cmd
}

func (a *app) treeCmd() *cobra.Command {
	q := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the merged population tree of a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			modelName, opts, err := a.options(q)
			if err != nil {
				return err
			}
			reg, err := a.loadSchema()
			if err != nil {
				return err
			}

			model, err := reg.Model(modelName)
			if err != nil {
				return err
			}
			forest, err := populate.Build(reg, model, opts.Populate)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), forest.String())

			for _, t := range forest.Trees() {
				if err := populate.ValidateDepth(t); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addQueryFlags(cmd, q)
	return cmd
}
