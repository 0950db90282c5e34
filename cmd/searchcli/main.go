package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/TMS-SearchService/internal/config"
	"github.com/m04kA/TMS-SearchService/internal/domain"
	"github.com/m04kA/TMS-SearchService/internal/filterstate"
	"github.com/m04kA/TMS-SearchService/internal/integrations/scheduleapi"
	filterUC "github.com/m04kA/TMS-SearchService/internal/usecase/filter_availabilities"
	searchUC "github.com/m04kA/TMS-SearchService/internal/usecase/search_availabilities"
	"github.com/m04kA/TMS-SearchService/pkg/logger"
)

// searchcli — консольный клиент поиска слотов терапевтов.
// Критерии фильтрации экстернализуются в query string (флаг --query),
// так что состояние поиска можно сохранить и восстановить.
func main() {
	rootCmd := &cobra.Command{
		Use:   "searchcli",
		Short: "Therapist appointment search client",
	}

	rootCmd.PersistentFlags().String("config", "config.toml", "path to config file")

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(payersCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search therapist availabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			calendar, _ := cmd.Flags().GetBool("calendar")
			query, _ := cmd.Flags().GetString("query")

			return runSearch(configPath, query, flagChanges(cmd), calendar)
		},
	}

	cmd.Flags().String("insurance", "", "insurance payer id (aetna, cigna, ...)")
	cmd.Flags().String("date-preset", "", "today | tomorrow | this_week | next_week | pick")
	cmd.Flags().String("date", "", "picked date, yyyy-MM-dd (implies --date-preset pick)")
	cmd.Flags().String("times", "", "comma-joined time segments (morning,afternoon,evening)")
	cmd.Flags().Bool("soonest", false, "collapse results to the soonest matching day")
	cmd.Flags().Bool("calendar", false, "also print dates with availability (2-week window)")
	cmd.Flags().String("query", "", "restore filter state from a query string")

	return cmd
}

func payersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payers",
		Short: "List insurance payers from the scheduling API",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runPayers(configPath)
		},
	}
}

// flagChanges собирает изменения состояния только из явно заданных флагов.
// Незаданный флаг не попадает в map и не затирает восстановленное из --query
// состояние; явно переданное пустое значение удаляет ключ.
func flagChanges(cmd *cobra.Command) map[string]string {
	changes := map[string]string{}

	flagParams := map[string]string{
		"insurance":   filterstate.ParamInsurance,
		"date-preset": filterstate.ParamDatePreset,
		"date":        filterstate.ParamDate,
		"times":       filterstate.ParamTimes,
	}
	for flag, param := range flagParams {
		if cmd.Flags().Changed(flag) {
			value, _ := cmd.Flags().GetString(flag)
			changes[param] = value
		}
	}

	if date, ok := changes[filterstate.ParamDate]; ok && date != "" {
		changes[filterstate.ParamDatePreset] = string(domain.PresetPick)
	}

	if cmd.Flags().Changed("soonest") {
		if soonest, _ := cmd.Flags().GetBool("soonest"); soonest {
			changes[filterstate.ParamSoonest] = "true"
		} else {
			changes[filterstate.ParamSoonest] = ""
		}
	}

	return changes
}

func runSearch(configPath, query string, changes map[string]string, calendar bool) error {
	cfg, log, err := setup(configPath)
	if err != nil {
		return err
	}
	defer log.Close()

	// Восстанавливаем состояние фильтров и вливаем изменения из флагов
	store, err := filterstate.FromQuery(query)
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}

	store.Update(changes)

	criteria := store.Criteria()

	if !criteria.HasInsurance() {
		fmt.Println("Select an insurance provider to see available appointments")
		fmt.Println("Known payers:", catalogIDs())
		return nil
	}

	// Каталог в форме поиска захардкожен — та же валидация, что в UI
	if !domain.KnownPayer(criteria.Insurance) {
		return fmt.Errorf("unknown insurance %q, expected one of: %s", criteria.Insurance, catalogIDs())
	}

	client := scheduleapi.NewClient(
		cfg.ScheduleService.URL,
		time.Duration(cfg.ScheduleService.Timeout)*time.Second,
		log,
	)

	state := searchUC.NewUseCase(client, log).Refresh(context.Background(), criteria.Insurance)
	if state.Err != nil {
		// Ошибка не фатальна: показываем текст вместо результатов
		fmt.Println(state.ErrorText())
		return nil
	}

	result := filterUC.NewUseCase().Execute(&filterUC.Request{
		Slots:    state.Slots,
		Criteria: criteria,
	})

	fmt.Printf("Filters: %s\n\n", store.Encode())
	printResults(result, criteria.Insurance)

	if calendar {
		fmt.Println("\nDates with availability (2-week window):")
		for _, date := range result.CalendarDates {
			fmt.Println("  " + date)
		}
	}

	return nil
}

func runPayers(configPath string) error {
	cfg, log, err := setup(configPath)
	if err != nil {
		return err
	}
	defer log.Close()

	client := scheduleapi.NewClient(
		cfg.ScheduleService.URL,
		time.Duration(cfg.ScheduleService.Timeout)*time.Second,
		log,
	)

	payers, err := client.GetInsurancePayers(context.Background())
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}

	for _, p := range payers {
		fmt.Printf("%-12s %s\n", p.ID, p.Name)
	}
	return nil
}

func setup(configPath string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, nil, err
	}

	return cfg, log, nil
}

func printResults(result *filterUC.Response, insurance string) {
	if result.IsFallback() {
		// Запасной вариант визуально отличается от прямых совпадений
		fmt.Println("No availabilities match your filters.")
		fmt.Printf("Next available: %s\n", result.FallbackDate.Format("Monday, January 2, 2006"))
		printSlots(result.Fallback, insurance)
		return
	}

	if len(result.Items) == 0 {
		fmt.Println("No availabilities match your filters")
		return
	}

	fmt.Println("Available Appointments:")
	printSlots(result.Items, insurance)
}

func printSlots(slots []domain.Availability, insurance string) {
	for _, slot := range slots {
		payerIDs := make([]string, len(slot.Therapist.InsurancePayers))
		for i, p := range slot.Therapist.InsurancePayers {
			payerIDs[i] = p.ID
		}

		marker := " "
		if slot.Therapist.AcceptsPayer(insurance) {
			marker = "*"
		}

		fmt.Printf("  %s %s  %s - %s  %s  [%s]\n",
			marker,
			slot.StartTime.Format("Mon Jan 2"),
			slot.StartTime.Format("3:04 PM"),
			slot.EndTime.Format("3:04 PM"),
			slot.Therapist.Name,
			strings.Join(payerIDs, ", "),
		)
	}
}

func catalogIDs() string {
	ids := make([]string, len(domain.PayerCatalog))
	for i, p := range domain.PayerCatalog {
		ids[i] = p.ID
	}
	return strings.Join(ids, ", ")
}
