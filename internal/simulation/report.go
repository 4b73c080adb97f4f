package simulation

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"thermal_planner/internal/models"
)

// Report is a snapshot of the simulation state. Every series has the same length.
type Report struct {
	ElapsedHours   float64              `json:"elapsed_hours"`
	TimeHours      []float64            `json:"time_hours"`
	Outdoor        []float64            `json:"outdoor"`
	Rooms          map[string][]float64 `json:"rooms"`
	Summaries      []models.RoomSummary `json:"summaries"`
	TotalEnergyKWh float64              `json:"total_energy_kwh"`
	TotalCost      float64              `json:"total_cost"`
}

// Report snapshots the history collected since Initialize.
func (s *ThermalSimulation) Report() (Report, error) {
	if !s.initialized {
		return Report{}, ErrNotInitialized
	}
	r := Report{
		ElapsedHours:   s.elapsed / 3600,
		TimeHours:      s.HistoryTime(),
		Outdoor:        s.HistoryOutdoor(),
		Rooms:          make(map[string][]float64, len(s.roomIDs)),
		TotalEnergyKWh: s.TotalEnergyKWh(),
	}
	for _, id := range s.roomIDs {
		series := s.HistoryRoom(id)
		r.Rooms[id] = series
		r.Summaries = append(r.Summaries, summarize(id, s.roomName(id), series, s.energy[id]))
	}
	return r, nil
}

// ApplyTariff prices every room's energy at perKWh and totals the cost.
func (r *Report) ApplyTariff(perKWh float64) {
	r.TotalCost = 0
	for i := range r.Summaries {
		r.Summaries[i].Cost = r.Summaries[i].EnergyKWh * perKWh
		r.TotalCost += r.Summaries[i].Cost
	}
}

func (s *ThermalSimulation) roomName(id string) string {
	if r, ok := s.building.Room(id); ok {
		return r.Name()
	}
	return id
}

func summarize(id, name string, series []float64, energy float64) models.RoomSummary {
	rs := models.RoomSummary{RoomID: id, Name: name, EnergyKWh: energy}
	if len(series) == 0 {
		return rs
	}
	rs.Min, rs.Max = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, v := range series {
		rs.Min = math.Min(rs.Min, v)
		rs.Max = math.Max(rs.Max, v)
		sum += v
	}
	rs.Mean = sum / float64(len(series))
	rs.Final = series[len(series)-1]
	return rs
}

// WriteCSV writes one row per history point: time_h, outdoor_c, then each room in id order.
func (s *ThermalSimulation) WriteCSV(w io.Writer) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	cw := csv.NewWriter(w)

	header := []string{"time_h", "outdoor_c"}
	for _, id := range s.roomIDs {
		header = append(header, fmt.Sprintf("%s (%s)", s.roomName(id), id))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, t := range s.historyTime {
		row := make([]string, 0, len(header))
		row = append(row, formatFloat(t), formatFloat(s.historyOutdoor[i]))
		for _, id := range s.roomIDs {
			row = append(row, formatFloat(s.historyTemps[id][i]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
