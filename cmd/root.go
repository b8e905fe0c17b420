package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/TaskGraph/internal/config"
	"github.com/josephgoksu/TaskGraph/internal/logger"
	"github.com/josephgoksu/TaskGraph/internal/memory"
	"github.com/josephgoksu/TaskGraph/internal/task"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks are available.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// version is the application version.
	version = "0.1.0"
)

const envPrefix = "TASKGRAPH"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskgraph",
	Short: "TaskGraph tracks tasks whose order is constrained by a dependency graph.",
	Long: `TaskGraph manages work items connected by dependency edges. The graph is
kept acyclic, and each task's status is derived automatically from the
completion state of its prerequisites: blocked while any prerequisite is
unfinished, pending (ready) once all of them are completed. Completing a
task cascades re-evaluation through everything that depends on it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetCommand(cmd.Name())
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logger.HandlePanic()
	logger.SetVersion(version)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.taskgraph.yaml or ./.taskgraph.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in the config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".taskgraph")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	logger.SetBasePath(config.GetDataBasePath())
}

// GetStore opens the SQLite graph store at the configured data path.
func GetStore() (task.GraphStore, error) {
	basePath := config.GetDataBasePath()
	s, err := memory.NewSQLiteStore(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", basePath, err)
	}
	return s, nil
}

// GetService wires the graph service over the configured store. The caller
// owns the returned store and must Close it.
func GetService() (*task.Service, task.GraphStore, error) {
	s, err := GetStore()
	if err != nil {
		return nil, nil, err
	}
	svc := task.NewService(s, viper.GetBool(config.KeyOverrideInProgress))
	return svc, s, nil
}

// selectTaskInteractive presents a prompt to the user to select a task from a list.
// It can be filtered using the provided filter function.
func selectTaskInteractive(svc *task.Service, filterFn func(task.Task) bool, label string) (task.Task, error) {
	all, err := svc.ListTasks()
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to list tasks for selection: %w", err)
	}

	var tasks []task.Task
	for _, t := range all {
		if filterFn == nil || filterFn(t) {
			tasks = append(tasks, t)
		}
	}
	if len(tasks) == 0 {
		return task.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} (ID: {{ .ID }}, Status: {{ .Status }})`,
		Inactive: `  {{ .Title | faint }} (ID: {{ .ID }}, Status: {{ .Status }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }} (ID: {{ .ID }})`,
		Details: `
--------- Task Details ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Title:\t" | faint }} {{ .Title }}
{{ "Description:\t" | faint }} {{ .Description }}
{{ "Status:\t" | faint }} {{ .Status }}`,
	}

	searcher := func(input string, index int) bool {
		t := tasks[index]
		name := strings.ToLower(t.Title)
		input = strings.ToLower(input)
		return strings.Contains(name, input) || strings.Contains(t.ID, input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return task.Task{}, err
	}
	return tasks[i], nil
}

// resolveTaskArg returns the task id from args, or prompts interactively.
func resolveTaskArg(svc *task.Service, args []string, filterFn func(task.Task) bool, label string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	t, err := selectTaskInteractive(svc, filterFn, label)
	if err != nil {
		return "", err
	}
	return t.ID, nil
}
