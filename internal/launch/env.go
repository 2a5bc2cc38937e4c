package launch

import (
	"os"
	"sort"
	"strconv"

	"github.com/vk/tunegridgo/internal/model"
	"github.com/vk/tunegridgo/internal/track"
)

// masterAddr is fixed to loopback: this launcher drives a single node, the
// multi-node case is out of scope.
const masterAddr = "127.0.0.1"

// launchEnv returns only the entries this launcher adds on top of the parent
// environment, in a stable order: rendezvous, rank identity, device
// visibility, tracking, then the run's extra env sorted by key.
func launchEnv(run *model.Run, rank, port int) []string {
	env := []string{
		"MASTER_ADDR=" + masterAddr,
		"MASTER_PORT=" + strconv.Itoa(port),
		"WORLD_SIZE=" + strconv.Itoa(run.Topology.NprocPerNode),
		"RANK=" + strconv.Itoa(rank),
		"LOCAL_RANK=" + strconv.Itoa(rank),
		"CUDA_VISIBLE_DEVICES=" + strconv.Itoa(run.Topology.Devices[rank]),
	}
	env = append(env, track.Env(run)...)

	keys := make([]string, 0, len(run.Env))
	for k := range run.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+run.Env[k])
	}
	return env
}

// workerEnv is the complete environment of one worker process: the parent
// environment with the launch entries appended. Later entries win on
// collision, so launch entries override inherited ones.
func workerEnv(run *model.Run, rank, port int) []string {
	return append(os.Environ(), launchEnv(run, rank, port)...)
}
