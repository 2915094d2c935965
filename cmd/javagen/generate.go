package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/javagen/dialect/inspect"
	"github.com/syssam/javagen/gen"
)

func newGenerateCmd(flags *rootFlags) *cobra.Command {
	var (
		tables    []string
		variant   string
		outputDir string
		pkg       string
		author    string
		date      string
		lombok    bool
		swagger   bool
		dto       bool
		vo        bool
		mappers   bool
		workers   int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the layered Java skeleton for a set of tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(flags.debug)
			if err != nil {
				return err
			}
			defer log.Sync()

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if variant == "" {
				variant = cfg.Generation.Variant
			}
			v, err := gen.ParseVariant(variant)
			if err != nil {
				return err
			}
			opts := cfg.Generation.Options()
			if pkg != "" {
				opts.Package = pkg
			}
			if author != "" {
				opts.Author = author
			}
			opts.Date = date
			if cmd.Flags().Changed("lombok") {
				opts.UseLombok = lombok
			}
			if cmd.Flags().Changed("swagger") {
				opts.UseSwagger = swagger
			}
			if cmd.Flags().Changed("dto") {
				opts.GenerateDTO = dto
			}
			if cmd.Flags().Changed("vo") {
				opts.GenerateVO = vo
			}
			if cmd.Flags().Changed("mappers") {
				opts.GenerateMappers = mappers
			}

			drv, err := flags.openDriver(cfg)
			if err != nil {
				return err
			}
			defer drv.Close()

			g := gen.NewGenerator(inspect.New(drv)).WithWorkers(workers)
			res, err := g.Generate(cmd.Context(), gen.Request{
				Tables:  tables,
				Variant: v,
				Options: opts,
			})
			if err != nil {
				return err
			}

			written, err := gen.WriteArtifacts(outputDir, res.Artifacts)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Println(path)
			}
			for table, warnings := range res.Warnings {
				for _, w := range warnings {
					log.Warnw("type fallback", "table", table, "detail", w)
				}
			}
			for _, c := range res.Collisions {
				printErr("collision: %v", c)
			}
			for _, e := range res.Errors {
				printErr("error: table %s: %v", e.Table, e.Err)
			}
			if res.Cancelled {
				return fmt.Errorf("javagen: generation cancelled before all tables finished")
			}
			if len(res.Errors) > 0 {
				return fmt.Errorf("javagen: %d table(s) failed", len(res.Errors))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&tables, "tables", nil, "tables to generate (required)")
	cmd.Flags().StringVar(&variant, "variant", "", "template variant: Default, MybatisPlus or MybatisPlus-Mixed")
	cmd.Flags().StringVarP(&outputDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&pkg, "package", "", "base Java package, e.g. com.example.app")
	cmd.Flags().StringVar(&author, "author", "", "author written into the generated javadoc")
	cmd.Flags().StringVar(&date, "date", "", "date written into the generated javadoc, verbatim")
	cmd.Flags().BoolVar(&lombok, "lombok", false, "annotate entities with Lombok")
	cmd.Flags().BoolVar(&swagger, "swagger", false, "annotate with OpenAPI/Swagger")
	cmd.Flags().BoolVar(&dto, "dto", false, "generate DTO classes")
	cmd.Flags().BoolVar(&vo, "vo", false, "generate VO classes")
	cmd.Flags().BoolVar(&mappers, "mappers", false, "generate MapStruct mappers")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of tables rendered concurrently")
	cmd.MarkFlagRequired("tables")
	return cmd
}
