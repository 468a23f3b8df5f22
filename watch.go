package ui

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchModelFile applies the model type stored in path now (if the file exists) and after every write to it.
// The parent directory is watched, so editors that replace the file on save are also followed.
func watchModelFile(v *Viewer, path string) (io.Closer, error) {
	path = filepath.Clean(path)
	apply := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Println("[Viewer] Error reading the model file:", err)
			}
			return
		}
		model, err := ParseModelType(string(data))
		if err != nil {
			log.Println("[Viewer] Ignoring the model file:", err)
			return
		}
		if err = v.SetModelType(model); err != nil {
			log.Println("[Viewer] Error applying the model file:", err)
		}
	}

	watcher, err := newFsWatcher()
	if err != nil {
		return nil, err
	}
	if err = watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	apply()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					log.Println("[Viewer] Model file changed, reloading")
					apply()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Println("[Viewer] Model file watcher error:", err)
			}
		}
	}()
	return watcher, nil
}
