package service

import (
	"bfv-tracker/internal/api"
	"bfv-tracker/internal/domain"
)

func toRawStats(d *api.StatsData) *domain.RawStats {
	stats := &domain.RawStats{
		Rank:              d.Rank.Ptr(),
		Kills:             d.Kills.Value,
		Deaths:            d.Deaths.Value,
		KillDeath:         d.KillDeath.Value,
		KillsPerMinute:    d.KillsPerMinute.Value,
		ScorePerMinute:    d.ScorePerMinute.Value,
		Revives:           d.Revives.Value,
		TimePlayedSeconds: d.TimePlayed.Ptr(),
	}

	stats.Items = make([]domain.ItemStat, 0, len(d.Weapons)+len(d.Gadgets)+len(d.UnpackWeapon))
	stats.Items = appendItems(stats.Items, d.Weapons, domain.OriginWeapon)
	stats.Items = appendItems(stats.Items, d.Gadgets, domain.OriginGadget)
	stats.Items = appendItems(stats.Items, d.UnpackWeapon, domain.OriginUnlockable)

	stats.Vehicles = make([]domain.VehicleStat, 0, len(d.Vehicles))
	for _, v := range d.Vehicles {
		stats.Vehicles = append(stats.Vehicles, domain.VehicleStat{
			Name:           v.Name.String(),
			Kills:          v.Kills.Value,
			KillsPerMinute: v.KillsPerMinute.String(),
			Destroyed:      v.Destroy.String(),
		})
	}

	return stats
}

func appendItems(dst []domain.ItemStat, src []api.WeaponStat, origin domain.ItemOrigin) []domain.ItemStat {
	for _, w := range src {
		dst = append(dst, domain.ItemStat{
			Name:           w.Name.String(),
			Origin:         origin,
			Kills:          w.Kills.Value,
			KillsPerMinute: w.KillsPerMinute.String(),
			Headshots:      w.Headshots.String(),
			Accuracy:       w.Accuracy.String(),
			KillEfficiency: w.HitVKills.String(),
		})
	}
	return dst
}

func toBanRecord(resp *api.BanRecordResponse) *domain.BanRecord {
	if resp == nil || resp.Data == nil {
		return nil
	}
	return &domain.BanRecord{StatusCode: resp.Data.Status.Ptr()}
}

func toCommunityStatus(resp *api.CommunityStatusResponse) *domain.CommunityStatus {
	if resp == nil || resp.Data == nil || !resp.Data.ReasonStatus.Valid {
		return nil
	}
	return &domain.CommunityStatus{ReasonStatusCode: resp.Data.ReasonStatus.Value}
}

func toBanLogEntries(resp *api.BanLogResponse) []domain.BanLogEntry {
	entries := make([]domain.BanLogEntry, 0, len(resp.Data))
	for _, e := range resp.Data {
		entries = append(entries, domain.BanLogEntry{
			ServerName: e.ServerName,
			Reason:     e.Reason,
			CreatedAt:  e.CreateTime,
		})
	}
	return entries
}

func toServerSummaries(resp *api.ServerSearchResponse) []domain.ServerSummary {
	servers := make([]domain.ServerSummary, 0, len(resp.Data))
	for _, s := range resp.Data {
		servers = append(servers, domain.ServerSummary{
			Name:            s.ServerName,
			ImageURL:        s.URL,
			MapName:         s.MapName,
			MapMode:         s.MapMode,
			CurrentSoldiers: s.Slots.Soldier.Current.Value,
			MaxSoldiers:     s.Slots.Soldier.Max.Value,
			QueueCount:      s.Slots.Queue.Current.Value,
		})
	}
	return servers
}
