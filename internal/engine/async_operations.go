package engine

import (
	"context"
	"fmt"

	"github.com/gcbaptista/license-plate-game/config"
	"github.com/gcbaptista/license-plate-game/model"
)

// ReloadDictionaryAsync re-reads a solver's dictionary file in the background.
func (e *Engine) ReloadDictionaryAsync(name string) (string, error) {
	instance, err := e.getInstance(name)
	if err != nil {
		return "", err
	}

	jobID := e.jobManager.CreateJob(model.JobTypeReloadDictionary, name, map[string]string{
		"operation":       "reload_dictionary",
		"dictionary_path": instance.DictionaryFile(),
	})

	err = e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeReloadDictionaryJob(ctx, name, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start reload dictionary job: %w", err)
	}

	return jobID, nil
}

// ReloadDictionary re-reads a solver's dictionary file and waits for it.
func (e *Engine) ReloadDictionary(name string) error {
	instance, err := e.getInstance(name)
	if err != nil {
		return err
	}
	if err := instance.Reload(); err != nil {
		return fmt.Errorf("failed to reload dictionary for solver '%s': %w", name, err)
	}
	return nil
}

func (e *Engine) executeReloadDictionaryJob(ctx context.Context, name, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	instance, err := e.getInstance(name)
	if err != nil {
		return err
	}

	e.jobManager.UpdateJobProgress(jobID, 0, 1, "Reloading dictionary")
	if err := instance.Reload(); err != nil {
		return fmt.Errorf("failed to reload dictionary for solver '%s': %w", name, err)
	}
	e.jobManager.UpdateJobProgress(jobID, 1, 1, fmt.Sprintf("Loaded %d words", instance.DictionarySize()))

	e.logger.Info().Str("solver", name).Int("words", instance.DictionarySize()).Msg("Dictionary reloaded (async)")
	return nil
}

// UpdateSolverSettingsAsync applies new settings in the background. Use it when the
// dictionary path changes, since the update then includes a dictionary load.
func (e *Engine) UpdateSolverSettingsAsync(name string, newSettings config.SolverSettings) (string, error) {
	if _, err := e.getInstance(name); err != nil {
		return "", err
	}

	jobID := e.jobManager.CreateJob(model.JobTypeUpdateSettings, name, map[string]string{
		"operation":       "update_settings",
		"dictionary_path": newSettings.DictionaryPath,
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeUpdateSettingsJob(ctx, name, newSettings, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start settings update job: %w", err)
	}

	return jobID, nil
}

func (e *Engine) executeUpdateSettingsJob(ctx context.Context, name string, newSettings config.SolverSettings, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.jobManager.UpdateJobProgress(jobID, 0, 1, "Applying settings")
	if err := e.updateSettingsUnsafe(name, newSettings); err != nil {
		return err
	}

	instance := e.solvers[name]
	if loadErr := instance.LoadError(); loadErr != nil {
		// Settings are saved; the solver carries on with an empty dictionary
		return fmt.Errorf("settings saved but dictionary could not be loaded: %w", loadErr)
	}
	e.jobManager.UpdateJobProgress(jobID, 1, 1, fmt.Sprintf("Loaded %d words", instance.DictionarySize()))
	return nil
}
