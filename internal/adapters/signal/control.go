package signal

import "github.com/dkeye/Handshake/internal/domain"

func (ctl *SignalWSController) handlePing(
	conn *WsSignalConn,
) {
	ctl.sendEvent(conn, domain.EventPong, nil)
}
