package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/ledger"
	"cinema-ticketing/internal/usecase"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var seatsCmd = &cobra.Command{
	Use:   "seats <session-id>",
	Short: "Print the seat map of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid session id %q", args[0])
		}

		config, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer db.Close()

		repos := repository.NewRepository(db, logger)
		// read-only: nothing is recorded, errors only reach the log
		service := usecase.NewService(repos, ledger.NewRecorder(logger, nil), usecase.OptionsFromConfig(config), logger)

		info, err := service.Scheduler.SessionInfo(cmd.Context(), sessionID)
		if err != nil {
			return err
		}
		statuses, err := service.Availability.SeatMap(cmd.Context(), sessionID)
		if err != nil {
			return err
		}

		renderSeatMap(cmd.OutOrStdout(), info, statuses, config.Booking.CurrencyMinorUnits)
		return nil
	},
}

// renderSeatMap prints one table row per hall row; sold seats show as "sold".
func renderSeatMap(w io.Writer, info *entity.SessionInfo, statuses []entity.SeatStatus, places int32) {
	rows := map[int][]entity.SeatStatus{}
	maxSeat := 0
	for _, st := range statuses {
		rows[st.Seat.RowNumber] = append(rows[st.Seat.RowNumber], st)
		if st.Seat.SeatNumber > maxSeat {
			maxSeat = st.Seat.SeatNumber
		}
	}
	rowNumbers := make([]int, 0, len(rows))
	for n := range rows {
		rowNumbers = append(rowNumbers, n)
	}
	sort.Ints(rowNumbers)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s | Hall %d %s (%s) | %s",
		info.MovieTitle, info.HallNumber, info.HallName, info.HallCategory,
		info.StartTime.Format("2006-01-02 15:04")))

	header := table.Row{"Row"}
	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignCenter}}
	for n := 1; n <= maxSeat; n++ {
		header = append(header, strconv.Itoa(n))
		configs = append(configs, table.ColumnConfig{Number: n + 1, Align: text.AlignRight})
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	free := 0
	for _, rn := range rowNumbers {
		cells := make([]any, maxSeat+1)
		cells[0] = rn
		for i := 1; i <= maxSeat; i++ {
			cells[i] = ""
		}
		for _, st := range rows[rn] {
			if st.Taken {
				cells[st.Seat.SeatNumber] = "sold"
				continue
			}
			free++
			cells[st.Seat.SeatNumber] = st.Price.StringFixed(places)
		}
		t.AppendRow(table.Row(cells))
	}

	t.AppendFooter(table.Row{"Free", fmt.Sprintf("%d / %d", free, len(statuses))})
	t.Style().Options.SeparateRows = true
	t.Render()
}
