package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/gravmod/internal/model"
	"github.com/san-kum/gravmod/internal/storage"
)

func newModelCmd() *cobra.Command {
	modelCmd := &cobra.Command{
		Use:   "model",
		Short: "edit a saved model document in place",
	}
	modelCmd.AddCommand(
		&cobra.Command{
			Use:   "duplicate [model.json] [id]",
			Short: "copy an object one metre above the original",
			Args:  cobra.ExactArgs(2),
			RunE: editModel(func(doc *model.Document, ids []uint64) error {
				obj, err := doc.Duplicate(ids[0])
				if err != nil {
					return err
				}
				fmt.Printf("added %s #%d\n", obj.Name, obj.ID)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remove [model.json] [id]",
			Short: "delete an object and drop it from its groups",
			Args:  cobra.ExactArgs(2),
			RunE: editModel(func(doc *model.Document, ids []uint64) error {
				return doc.Remove(ids[0])
			}),
		},
		&cobra.Command{
			Use:   "group [model.json] [name] [id...]",
			Short: "add objects to a named group",
			Args:  cobra.MinimumNArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := args[1]
				return editDocument(args[0], args[2:], func(doc *model.Document, ids []uint64) error {
					return doc.Group(name, ids...)
				})
			},
		},
	)
	return modelCmd
}

// editModel adapts an edit taking the ids that follow the document path.
func editModel(edit func(*model.Document, []uint64) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return editDocument(args[0], args[1:], edit)
	}
}

// editDocument loads path, applies edit and writes the document back.
func editDocument(path string, idArgs []string, edit func(*model.Document, []uint64) error) error {
	ids := make([]uint64, len(idArgs))
	for i, a := range idArgs {
		id, err := strconv.ParseUint(a, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid object id %q: %w", a, err)
		}
		ids[i] = id
	}
	doc, err := storage.LoadModelFile(path)
	if err != nil {
		return err
	}
	if err := edit(doc, ids); err != nil {
		return err
	}
	return storage.SaveModelFile(path, doc)
}
