// Package templates writes the default files an operator edits.
package templates

import (
	"errors"
	"log"
	"os"

	"github.com/tie/internal/renameio"
)

// Ensure writes data to path unless a file already exists there.
// It reports whether the file was created.
func Ensure(path string, data []byte) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return false, err
	}
	return true, nil
}

func EnsureServerConfig(path string) error {
	created, err := Ensure(path, []byte(ServerConfig))
	if err != nil {
		return err
	}
	if created {
		log.Printf("created server config %q from the default template", path)
	} else {
		log.Printf("found server config %q, edit it to change how the server runs", path)
	}
	return nil
}

func EnsureModList(path string) error {
	created, err := Ensure(path, []byte(ModList))
	if err != nil {
		return err
	}
	if created {
		log.Printf("created mod list %q from the default template", path)
	} else {
		log.Printf("found mod list %q, edit it to add Steam Workshop mods", path)
	}
	return nil
}

const ModList = `# To add a Steam Workshop mod, put its workshop ID and a name separated by a
# comma on a single line (surrounding whitespace is ignored). The name may only
# contain letters, digits, spaces and the characters "_", "-" and ".".
# Add one mod per line.
#
# Workshop IDs are at the end of the workshop item URL:
# https://steamcommunity.com/sharedfiles/filedetails/?id=2950280649
#
# A '#' and everything after it on the same line is ignored.
# Example (remove the first '#' to enable it):
# 2950280649, DayZ-Rat
`

const ServerConfig = `hostname = "SERVER";  // Server name
password = "";              // Password to connect to the server
passwordAdmin = "";         // Password to become a server admin

enableWhitelist = 0;        // Enable/disable whitelist (value 0-1)

maxPlayers = 60;            // Maximum amount of players

verifySignatures = 2;       // Verifies .pbos against .bisign files. (only 2 is supported)
forceSameBuild = 1;         // When enabled, the server will allow the connection only to clients with the same .exe revision as the server (value 0-1)

disableVoN = 0;             // Enable/disable voice over network (value 0-1)
vonCodecQuality = 20;       // Voice over network codec quality, the higher the better (values 0-30)

disable3rdPerson=0;         // Toggles the 3rd person view for players (value 0-1)
disableCrosshair=0;         // Toggles the cross-hair (value 0-1)

disablePersonalLight = 1;   // Disables personal light for all clients connected to the server
lightingConfig = 0;         // 0 for a brighter night setup, 1 for a darker night setup

serverTime="SystemTime";    // Initial in-game time of the server. "SystemTime" means the local time of the machine. Another possibility is to set the time to some value in "YYYY/MM/DD/HH/MM" format, e.g., "2015/4/8/17/23".
serverTimeAcceleration=12;  // Accelerated Time (value 0-24). Multiplier for in-game time.
serverNightTimeAcceleration=1;  // Accelerated Night Time (0.1-64), also multiplied by serverTimeAcceleration.
serverTimePersistent=0;     // Persistent Time (value 0-1). The server time is saved to storage and restored on the next start.

guaranteedUpdates=1;        // Communication protocol used with the game server (use only number 1)

loginQueueConcurrentPlayers=5;  // The number of players concurrently processed during the login process.
loginQueueMaxPlayers=500;       // The maximum number of players that can wait in the login queue

instanceId = 1;             // DayZ server instance id, to identify the number of instances per box and their storage folders with persistence files

storageAutoFix = 1;         // Checks if the persistence files are corrupted and replaces corrupted ones with empty ones (value 0-1)

logFile = "serverconsole.log"


class Missions
{
	class DayZ
	{
		template = "dayzOffline.chernarusplus"; // Mission to load on server startup. <MissionName>.<TerrainName>
	};
};
`
