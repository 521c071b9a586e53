package service

import "yogacrm_backend/internals/constants"

// FunnelRow is one grouped slice of the client table: a channel, a
// lifecycle stage, how many clients sit there and how many of those
// closed their deal.
type FunnelRow struct {
	FromSource string
	Status     int
	Total      int64
	Closed     int64
}

// ChannelFunnel is the per-channel rollup the report screen renders.
// Stage counts are cumulative: a client at stage 4 also counts toward
// stages 2 and 3, so each bar of the funnel is at least as wide as the
// one below it.
type ChannelFunnel struct {
	FromSource string `json:"from_source"`
	Leads      int64  `json:"leads"`
	Assigned   int64  `json:"assigned"`
	Converted  int64  `json:"converted"`
	Appointed  int64  `json:"appointed"`
	Graduated  int64  `json:"graduated"`
	Closed     int64  `json:"closed"`
}

// BuildFunnel folds grouped rows into one funnel per channel, in a
// single pass over the input.
func BuildFunnel(rows []FunnelRow) []ChannelFunnel {
	index := map[string]int{}
	funnels := []ChannelFunnel{}

	for _, row := range rows {
		i, ok := index[row.FromSource]
		if !ok {
			i = len(funnels)
			index[row.FromSource] = i
			funnels = append(funnels, ChannelFunnel{FromSource: row.FromSource})
		}
		f := &funnels[i]

		f.Leads += row.Total
		if row.Status >= constants.ClientAssigned {
			f.Assigned += row.Total
		}
		if row.Status >= constants.ClientConverted {
			f.Converted += row.Total
		}
		if row.Status >= constants.ClientAppointed {
			f.Appointed += row.Total
		}
		if row.Status >= constants.ClientGraduated {
			f.Graduated += row.Total
		}
		f.Closed += row.Closed
	}

	return funnels
}
