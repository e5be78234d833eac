// Command libfsops builds the C shared library:
//
//	go build -buildmode=c-shared -o libfsops.so ./cmd/libfsops
//
// Every exported function returns an OperationResult whose message is owned
// by the caller and must be handed back to free_result exactly once.
//
// The library reads its settings from the environment (FSOPS_LOG_LEVEL,
// FSOPS_LOG_FORMAT, FSOPS_CROSS_VOLUME_FALLBACK, FSOPS_CONFIG) on first use.
package main

/*
typedef struct {
	int success;
	char* message;
} OperationResult;
*/
import "C"

import (
	"os"
	"sync"
	"unsafe"

	"github.com/cperrin88/fsops/internal/cabi"
	"github.com/cperrin88/fsops/internal/logger"
	"github.com/cperrin88/fsops/pkg/boundary"
	"github.com/cperrin88/fsops/pkg/config"
	"github.com/cperrin88/fsops/pkg/fsutil"
)

// defaultLogLevel keeps a host process's stderr quiet unless configured.
const defaultLogLevel = "warn"

var (
	bridgeOnce sync.Once
	bridge     *boundary.Bridge
)

func getBridge() *boundary.Bridge {
	bridgeOnce.Do(func() {
		cfg, err := config.Load("")
		if err != nil {
			cfg = config.DefaultConfig()
			defer logger.Warn("Ignoring fsops configuration", logger.Fields{"error": err.Error()})
		}
		if cfg.Settings.LogLevel == config.DefaultLogLevel && os.Getenv(config.EnvPrefix+"_LOG_LEVEL") == "" {
			cfg.Settings.LogLevel = defaultLogLevel
		}

		logger.InitLoggerTo(os.Stderr, cfg.Settings.LogLevel, logger.OutputFormat(cfg.Settings.LogFormat))

		engine := fsutil.NewEngine(fsutil.Options{CrossVolumeFallback: cfg.Settings.CrossVolumeFallback})
		bridge = boundary.New(engine, cabi.Allocator{})
	})
	return bridge
}

func toC(r boundary.Result) C.OperationResult {
	return C.OperationResult{success: C.int(r.Success), message: (*C.char)(r.Message)}
}

//export create_folder
func create_folder(path *C.char) C.OperationResult {
	return toC(getBridge().CreateFolder(unsafe.Pointer(path)))
}

//export create_file
func create_file(path *C.char) C.OperationResult {
	return toC(getBridge().CreateFile(unsafe.Pointer(path)))
}

//export rename_path
func rename_path(oldPath, newPath *C.char) C.OperationResult {
	return toC(getBridge().Rename(unsafe.Pointer(oldPath), unsafe.Pointer(newPath)))
}

//export delete_path
func delete_path(path *C.char) C.OperationResult {
	return toC(getBridge().Delete(unsafe.Pointer(path)))
}

//export change_permissions
func change_permissions(path *C.char, mode C.uint) C.OperationResult {
	return toC(getBridge().SetPermissions(unsafe.Pointer(path), uint32(mode)))
}

//export move_path
func move_path(src, dst *C.char) C.OperationResult {
	return toC(getBridge().Move(unsafe.Pointer(src), unsafe.Pointer(dst)))
}

//export copy_path
func copy_path(src, dst *C.char) C.OperationResult {
	return toC(getBridge().Copy(unsafe.Pointer(src), unsafe.Pointer(dst)))
}

//export free_result
func free_result(result C.OperationResult) {
	getBridge().Release(boundary.Result{
		Success: int32(result.success),
		Message: unsafe.Pointer(result.message),
	})
}

func main() {}
