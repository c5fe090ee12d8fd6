package handler

import (
	"net/http"
	"strconv"

	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/slots"
)

// MachinesResponse is the catalog a client needs to resolve spins locally
type MachinesResponse struct {
	JackpotSeed         int64                 `json:"jackpotSeed"`
	JackpotContribution float64               `json:"jackpotContribution"`
	BetLevels           []slots.BetLevel      `json:"betLevels"`
	Machines            []slots.MachineConfig `json:"machines"`
}

// HandleMachines serves the machine catalog. With ?level=N only machines
// unlocked at player level N are listed.
// @Summary List slot machines
// @Description Machine definitions, bet levels and jackpot settings clients resolve spins with
// @Tags catalog
// @Produce json
// @Param level query int false "Only machines unlocked at this player level"
// @Success 200 {object} MachinesResponse
// @Failure 400 {object} ErrorResponse "Invalid level"
// @Router /api/v1/machines [get]
func HandleMachines(catalog *slots.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		machines := catalog.Machines
		if raw := r.URL.Query().Get(QueryParamLevel); raw != "" {
			level, err := strconv.Atoi(raw)
			if err != nil || level < 0 {
				respondError(w, http.StatusBadRequest, domain.KindInvalidArgument, ErrMsgInvalidQuery)
				return
			}
			machines = catalog.UnlockedMachines(level)
		}

		respondJSON(w, http.StatusOK, MachinesResponse{
			JackpotSeed:         catalog.JackpotSeed,
			JackpotContribution: catalog.JackpotContribution,
			BetLevels:           catalog.BetLevels,
			Machines:            machines,
		})
	}
}
