package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/javagen/gen"
	"github.com/syssam/javagen/manifest"
)

func newDepsCmd(flags *rootFlags) *cobra.Command {
	var (
		pomPath string
		variant string
		lombok  bool
		swagger bool
		mappers bool
	)
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Compare a pom.xml against the dependencies the generated code needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := gen.ParseVariant(variant)
			if err != nil {
				return err
			}
			f, err := os.Open(pomPath)
			if err != nil {
				return err
			}
			defer f.Close()
			m, err := manifest.Parse(f)
			if err != nil {
				return err
			}
			opts := gen.Options{
				UseLombok:       lombok,
				UseSwagger:      swagger,
				GenerateMappers: mappers,
			}
			patch := manifest.Reconcile(m, manifest.Required(v, opts, flags.dialect))
			if patch.Empty() {
				fmt.Println("manifest satisfies every requirement")
				return nil
			}
			for _, u := range patch.Upgrades {
				fmt.Printf("upgrade %s:%s %s -> %s (%s)\n",
					u.GroupID, u.ArtifactID, u.From, u.To, u.Reason)
			}
			if len(patch.Additions) > 0 {
				fmt.Println("missing dependencies:")
				fmt.Print(patch.Snippet())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pomPath, "pom", "pom.xml", "path to the project's pom.xml")
	cmd.Flags().StringVar(&variant, "variant", string(gen.VariantDefault), "template variant the code was generated with")
	cmd.Flags().BoolVar(&lombok, "lombok", false, "code uses Lombok")
	cmd.Flags().BoolVar(&swagger, "swagger", false, "code uses OpenAPI/Swagger")
	cmd.Flags().BoolVar(&mappers, "mappers", false, "code uses MapStruct")
	return cmd
}
