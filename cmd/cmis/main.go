package main

import (
	"context"
	"fmt"
	"os"

	"cmis-go/internal/app"
	"cmis-go/internal/config"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var verbose bool

// newApp reads the config and creates an App. The caller must defer app.Close().
// command identifies the CLI command being run (e.g. "CreateTypes", "ListTypes").
func newApp(ctx context.Context, command string) (*app.App, error) {
	cfg, _, err := readConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewApp(ctx, cfg, command, verbose, app.WithPassphrase(readPassphrase))
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

func readConfig() (*config.Config, string, error) {
	paths, err := app.DefaultPaths()
	if err != nil {
		return nil, "", fmt.Errorf("getting default paths: %w", err)
	}
	cfg, err := config.ReadFromFile(paths.ConfigPath)
	if err != nil {
		return nil, "", fmt.Errorf("reading config: %w", err)
	}
	return cfg, paths.ConfigPath, nil
}

var rootCmd = &cobra.Command{
	Use:          "cmis",
	Short:        "Manage the type system of a CMIS repository",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration and repository storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := app.DefaultPaths()
		if err != nil {
			return fmt.Errorf("failed to get default paths: %w", err)
		}

		repositoryID, _ := cmd.Flags().GetString("repository")
		if repositoryID == "" {
			repositoryID = uuid.New().String()
		}
		version, _ := cmd.Flags().GetString("cmis-version")
		encrypt, _ := cmd.Flags().GetBool("encrypt")

		cfg := config.NewConfig(repositoryID, paths.Home)
		cfg.CMISVersion = version
		if encrypt {
			cfg.Encryption.Type = "age"
		}

		if err := config.Init(paths.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		if err := app.InitRepository(cmd.Context(), cfg, newPassphrase); err != nil {
			return fmt.Errorf("failed to initialize repository: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", paths.ConfigPath)
		fmt.Printf("Repository ID: %s\n", repositoryID)
		fmt.Printf("CMIS Version:  %s\n", cfg.CMISVersion)
		fmt.Printf("Base Dir:      %s\n", cfg.BaseDir)
		fmt.Printf("Encryption:    %s\n", cfg.Encryption.Type)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := readConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration from %s:\n\n", path)
		fmt.Printf("Repository ID: %s\n", cfg.RepositoryID)
		fmt.Printf("Name:          %s\n", cfg.RepositoryName)
		fmt.Printf("CMIS Version:  %s\n", cfg.CMISVersion)
		fmt.Printf("Base Dir:      %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:       %s\n", cfg.LogDir)
		fmt.Printf("Type Store:    %s\n", cfg.TypeStore.Type)
		fmt.Printf("Encryption:    %s\n", cfg.Encryption.Type)
		for _, pattern := range cfg.TypeFiles {
			fmt.Printf("Type Files:    %s\n", pattern)
		}
		for _, a := range cfg.Archives {
			fmt.Printf("Archive:       %s (%s)\n", a.Name, a.Type)
		}
		return nil
	},
}

// types command
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Inspect and change types",
}

var typesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the type hierarchy",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "ListTypes")
		if err != nil {
			return err
		}
		defer a.Close()

		roots, err := a.TypeDescendants(cmd.Context(), "", nil, false)
		if err != nil {
			return err
		}
		printTypeTree(os.Stdout, roots, terminalWidth(os.Stdout))
		return nil
	},
}

var typesChildrenCmd = &cobra.Command{
	Use:   "children [TYPE]",
	Short: "List the direct subtypes of a type, or the base types",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "TypeChildren")
		if err != nil {
			return err
		}
		defer a.Close()

		typeID := ""
		if len(args) > 0 {
			typeID = args[0]
		}
		maxItems, err := optionalInt64(cmd, "max-items")
		if err != nil {
			return err
		}
		skipCount, err := optionalInt64(cmd, "skip")
		if err != nil {
			return err
		}

		list, err := a.TypeChildren(cmd.Context(), typeID, maxItems, skipCount)
		if err != nil {
			return err
		}
		printTypeList(os.Stdout, list, terminalWidth(os.Stdout))
		return nil
	},
}

var typesDescendantsCmd = &cobra.Command{
	Use:   "descendants TYPE",
	Short: "Show the subtypes of a type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "TypeDescendants")
		if err != nil {
			return err
		}
		defer a.Close()

		depth, err := optionalInt64(cmd, "depth")
		if err != nil {
			return err
		}
		children, err := a.TypeDescendants(cmd.Context(), args[0], depth, false)
		if err != nil {
			return err
		}
		if len(children) == 0 {
			fmt.Println("No subtypes.")
			return nil
		}
		printTypeTree(os.Stdout, children, terminalWidth(os.Stdout))
		return nil
	},
}

var typesShowCmd = &cobra.Command{
	Use:   "show TYPE",
	Short: "Show a type definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "GetType")
		if err != nil {
			return err
		}
		defer a.Close()

		td, err := a.GetType(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printTypeJSON(os.Stdout, td)
	},
}

var typesCreateCmd = &cobra.Command{
	Use:   "create FILE",
	Short: "Create the types of a type document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "CreateTypes")
		if err != nil {
			return err
		}
		defer a.Close()

		created, err := a.CreateTypes(cmd.Context(), args[0])
		for _, td := range created {
			fmt.Printf("Created %s\n", td.ID)
		}
		if err != nil {
			return fmt.Errorf("creating types: %w", err)
		}
		return nil
	},
}

var typesUpdateCmd = &cobra.Command{
	Use:   "update FILE",
	Short: "Update the types of a type document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "UpdateTypes")
		if err != nil {
			return err
		}
		defer a.Close()

		updated, err := a.UpdateTypes(cmd.Context(), args[0])
		for _, td := range updated {
			fmt.Printf("Updated %s\n", td.ID)
		}
		if err != nil {
			return fmt.Errorf("updating types: %w", err)
		}
		return nil
	},
}

var typesDeleteCmd = &cobra.Command{
	Use:   "delete TYPE",
	Short: "Delete a type without subtypes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "DeleteType")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeleteType(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var typesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the custom types as a type document",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "ExportTypes")
		if err != nil {
			return err
		}
		defer a.Close()

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			return a.ExportTypes(os.Stdout)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		if err := a.ExportTypes(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

var typesHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "View type changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd.Context(), "History")
		if err != nil {
			return err
		}
		defer a.Close()

		changes, err := a.History(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			fmt.Println("No type changes recorded.")
			return nil
		}
		for _, c := range changes {
			fmt.Printf("#%d  %s  %-8s  %s\n",
				c.ID,
				c.ChangedAt.Format("2006-01-02 15:04:05"),
				c.Kind,
				c.TypeID,
			)
		}
		return nil
	},
}

// validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a property set against its types",
	RunE: func(cmd *cobra.Command, args []string) error {
		typeID, _ := cmd.Flags().GetString("type")
		file, _ := cmd.Flags().GetString("file")
		mandatory, _ := cmd.Flags().GetBool("mandatory")

		a, err := newApp(cmd.Context(), "ValidateProperties")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ValidateProperties(cmd.Context(), file, typeID, mandatory); err != nil {
			return err
		}
		fmt.Println("Properties are valid.")
		return nil
	},
}

// archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage type snapshots",
}

var archivePushCmd = &cobra.Command{
	Use:   "push",
	Short: "Store a snapshot of the custom types",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("archive")

		a, err := newApp(cmd.Context(), "PushSnapshot")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.PushSnapshot(cmd.Context(), name)
		if err != nil {
			return err
		}
		fmt.Printf("Pushed snapshot %s with %d type(s)\n", s.ID, len(s.Types))
		return nil
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("archive")

		a, err := newApp(cmd.Context(), "ListSnapshots")
		if err != nil {
			return err
		}
		defer a.Close()

		infos, err := a.ListSnapshots(cmd.Context(), name)
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("No snapshots.")
			return nil
		}
		for _, info := range infos {
			fmt.Printf("%s  %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"), info.ID)
		}
		return nil
	},
}

var archiveRestoreCmd = &cobra.Command{
	Use:   "restore [SNAPSHOT]",
	Short: "Recreate missing types from a snapshot (latest by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("archive")
		id := ""
		if len(args) > 0 {
			id = args[0]
		}

		a, err := newApp(cmd.Context(), "RestoreSnapshot")
		if err != nil {
			return err
		}
		defer a.Close()

		added, skipped, err := a.RestoreSnapshot(cmd.Context(), name, id)
		if err != nil {
			return err
		}
		fmt.Printf("Restored %d type(s), %d already present\n", added, skipped)
		return nil
	},
}

// optionalInt64 returns nil when the flag was not given, so the configured
// default applies.
func optionalInt64(cmd *cobra.Command, name string) (*int64, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	v, err := cmd.Flags().GetInt64(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configInitCmd.Flags().String("repository", "", "Repository id (default: random UUID)")
	configInitCmd.Flags().String("cmis-version", "1.1", "CMIS version of the type system (1.0 or 1.1)")
	configInitCmd.Flags().Bool("encrypt", false, "Encrypt archived snapshots with a new age key pair")

	// types subcommands
	typesCmd.AddCommand(typesListCmd)
	typesCmd.AddCommand(typesChildrenCmd)
	typesChildrenCmd.Flags().Int64P("max-items", "n", 0, "Maximum number of types to list")
	typesChildrenCmd.Flags().Int64("skip", 0, "Number of types to skip")
	typesCmd.AddCommand(typesDescendantsCmd)
	typesDescendantsCmd.Flags().Int64P("depth", "d", -1, "Levels to show (-1 for all)")
	typesCmd.AddCommand(typesShowCmd)
	typesCmd.AddCommand(typesCreateCmd)
	typesCmd.AddCommand(typesUpdateCmd)
	typesCmd.AddCommand(typesDeleteCmd)
	typesCmd.AddCommand(typesExportCmd)
	typesExportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	typesCmd.AddCommand(typesHistoryCmd)
	typesHistoryCmd.Flags().IntP("limit", "n", 50, "Maximum number of changes to show")

	// validate flags
	validateCmd.Flags().StringP("type", "t", "", "Object type id (overrides cmis:objectTypeId)")
	validateCmd.Flags().StringP("file", "f", "", "Property set file")
	validateCmd.Flags().Bool("mandatory", false, "Require all required properties")
	validateCmd.MarkFlagRequired("file")

	// archive subcommands
	archiveCmd.AddCommand(archivePushCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveRestoreCmd)
	archiveCmd.PersistentFlags().StringP("archive", "a", "", "Archive name (default: first configured)")

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(archiveCmd)
}
