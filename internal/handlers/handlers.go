package handlers

import (
	"github.com/seniormoment/seniormoment/internal/services"
	"github.com/seniormoment/seniormoment/internal/sound"
	"github.com/seniormoment/seniormoment/pkg/funnel"
)

type Handler struct {
	alarmSrv *services.AlarmService
	player   *sound.Player
	funnel   *funnel.Funnel
}

func New(alarmSrv *services.AlarmService, player *sound.Player, f *funnel.Funnel) *Handler {
	return &Handler{
		alarmSrv: alarmSrv,
		player:   player,
		funnel:   f,
	}
}
