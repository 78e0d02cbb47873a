package orchestrator

import (
	"strconv"

	"github.com/vizij-ai/vizij-go/anim"
	"github.com/vizij-ai/vizij-go/path"
	"github.com/vizij-ai/vizij-go/value"
	"github.com/vizij-ai/vizij-go/vzerr"
)

// errBadCommandPathMsg prefixes the vzerr.KindParseError raised when a
// reserved anim/player/<id>/cmd/{seek|play|pause|stop} path holds a value
// of the wrong kind for its op. Other paths under the "anim" namespace are
// not inspected. Such an error never aborts the tick: it is surfaced as a
// ControllerEvent, matching specification §7's "Orchestrator propagates
// controller errors as events; the frame still completes."
const errBadCommandPathMsg = "orchestrator: malformed animation command path"

// animCommandPath renders the reserved convention for playerID on ctrl,
// per the specification's Open Question recommendation: the player's
// integer id in decimal. The path carries no controller component, so
// every animation controller that has a player with that id reacts to it.
func animCommandPath(playerID anim.PlayerId, op string) path.TypedPath {
	return path.MustParse("anim/player/" + strconv.FormatUint(uint64(playerID), 10) + "/cmd/" + op)
}

// translateAnimCommands scans bb for every reserved command path owned by
// ctrl's players, applying any whose blackboard epoch is newer than the
// last one this controller consumed (so a command value left sitting on
// the blackboard is not re-applied every subsequent tick). Malformed
// values (wrong Value kind for the op) are reported as a ControllerEvent,
// not a tick-aborting error.
func translateAnimCommands(ctrl *animController, bb map[path.TypedPath]BlackboardEntry, applied map[path.TypedPath]uint64) ([]anim.PlayerCommand, []ControllerEvent) {
	var cmds []anim.PlayerCommand
	var events []ControllerEvent

	for _, playerID := range ctrl.playerIDs {
		for _, op := range [...]string{"seek", "play", "pause", "stop"} {
			p := animCommandPath(playerID, op)
			entry, ok := bb[p]
			if !ok {
				continue
			}
			if lastEpoch, seen := applied[p]; seen && entry.Epoch <= lastEpoch {
				continue
			}
			applied[p] = entry.Epoch

			cmd, ok, err := buildPlayerCommand(playerID, op, entry.Value)
			if err != nil {
				events = append(events, ControllerEvent{Controller: ctrl.id, Message: err.Error()})
				continue
			}
			if ok {
				cmds = append(cmds, cmd)
			}
		}
	}
	return cmds, events
}

func buildPlayerCommand(playerID anim.PlayerId, op string, v value.Value) (anim.PlayerCommand, bool, error) {
	const opName = "orchestrator.Step"
	switch op {
	case "seek":
		if v.Kind != value.KindFloat {
			return anim.PlayerCommand{}, false, vzerr.Newf(vzerr.KindParseError, opName, "%s: seek value must be float seconds", errBadCommandPathMsg)
		}
		return anim.PlayerCommand{Kind: anim.CmdSeek, PlayerID: playerID, SeekNs: int64(float64(v.Float) * 1e9)}, true, nil
	case "play":
		if v.Kind != value.KindBool {
			return anim.PlayerCommand{}, false, vzerr.Newf(vzerr.KindParseError, opName, "%s: play value must be bool", errBadCommandPathMsg)
		}
		return anim.PlayerCommand{Kind: anim.CmdPlay, PlayerID: playerID}, v.Bool, nil
	case "pause":
		if v.Kind != value.KindBool {
			return anim.PlayerCommand{}, false, vzerr.Newf(vzerr.KindParseError, opName, "%s: pause value must be bool", errBadCommandPathMsg)
		}
		return anim.PlayerCommand{Kind: anim.CmdPause, PlayerID: playerID}, v.Bool, nil
	case "stop":
		if v.Kind != value.KindBool {
			return anim.PlayerCommand{}, false, vzerr.Newf(vzerr.KindParseError, opName, "%s: stop value must be bool", errBadCommandPathMsg)
		}
		return anim.PlayerCommand{Kind: anim.CmdStop, PlayerID: playerID}, v.Bool, nil
	default:
		return anim.PlayerCommand{}, false, vzerr.Newf(vzerr.KindParseError, opName, errBadCommandPathMsg)
	}
}
