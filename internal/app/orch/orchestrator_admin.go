package orch

import (
	"errors"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/domain"
	"github.com/dkeye/VoiceClient/internal/protocol"
)

var ErrNotAdmin = errors.New("admin role required")

func (o *Orchestrator) requireAdmin() error {
	p, ok := o.Session.Profile()
	if !ok || !p.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}

func (o *Orchestrator) OpenAdminPanel() error {
	if err := o.requireAdmin(); err != nil {
		return err
	}
	o.Renderer.ShowView(core.ViewAdmin)
	return nil
}

func (o *Orchestrator) CloseAdminPanel() error {
	if err := o.requireAdmin(); err != nil {
		return err
	}
	o.Renderer.ShowView(core.ViewMain)
	return nil
}

func (o *Orchestrator) adminSend(kind protocol.Kind, payload any) error {
	if err := o.requireAdmin(); err != nil {
		return err
	}
	return o.send(kind, payload)
}

func (o *Orchestrator) AdminGetAllUsers() error {
	return o.adminSend(protocol.KindAdminGetAllUsers, nil)
}

func (o *Orchestrator) AdminGetAllRooms() error {
	return o.adminSend(protocol.KindAdminGetAllRooms, nil)
}

func (o *Orchestrator) AdminCreateUser(creds domain.Credentials, role domain.Role) error {
	if creds.Username == "" || creds.Password == "" {
		o.notify(core.NoticeError, "adminNewUserEmptyFields")
		if creds.Username == "" {
			return domain.ErrUsernameEmpty
		}
		return domain.ErrPasswordEmpty
	}
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return domain.ErrInvalidRole
	}
	return o.adminSend(protocol.KindAdminCreateUser, protocol.AdminCreateUser{
		Username: creds.Username,
		Password: creds.Password,
		Role:     role,
	})
}

func (o *Orchestrator) AdminDeleteUser(id domain.UserID) error {
	return o.adminSend(protocol.KindAdminDeleteUser, protocol.AdminDeleteUser{UserID: id})
}

func (o *Orchestrator) AdminDeleteRoom(id domain.RoomID) error {
	return o.adminSend(protocol.KindAdminDeleteRoom, protocol.AdminDeleteRoom{RoomID: id})
}

func (o *Orchestrator) AdminShutdownServer() error {
	if err := o.adminSend(protocol.KindAdminShutdownServer, nil); err != nil {
		return err
	}
	o.notify(core.NoticeInfo, "shutdownCommandSent")
	return nil
}

func (o *Orchestrator) AdminChangePort(port int) error {
	if err := domain.ValidatePort(port); err != nil {
		o.notify(core.NoticeError, "invalidPort")
		return err
	}
	return o.adminSend(protocol.KindAdminChangePort, protocol.AdminChangePort{Port: port})
}

func (o *Orchestrator) OnAdminAllUsers(users []domain.AdminUser) { o.Renderer.RenderUsers(users) }

func (o *Orchestrator) OnAdminAllRooms(rooms []domain.AdminRoom) { o.Renderer.RenderRooms(rooms) }

func (o *Orchestrator) OnAdminCreateUserOK(n protocol.Notice) {
	o.notify(core.NoticeSuccess, "genericSuccess", "message", n.Text)
}

func (o *Orchestrator) OnAdminCreateUserFail(n protocol.Notice) {
	o.notify(core.NoticeError, "genericError", "message", n.Text)
}

func (o *Orchestrator) OnAdminChangePortOK(protocol.Notice) {
	o.notify(core.NoticeSuccess, "changePortSuccess")
}

func (o *Orchestrator) OnAdminChangePortFail(n protocol.Notice) {
	o.notify(core.NoticeError, "changePortFail", "error", n.Text)
}

func (o *Orchestrator) OnAdminGenericOK(n protocol.Notice) {
	o.notify(core.NoticeSuccess, "genericSuccess", "message", n.Text)
}

func (o *Orchestrator) OnAdminError(n protocol.Notice) {
	o.notify(core.NoticeError, "genericError", "message", n.Text)
}
