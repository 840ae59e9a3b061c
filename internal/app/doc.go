// Package app assembles and runs one report generation.
//
// # Initialization Flow
//
//	1. Load configuration (defaults, YAML file, .env, environment)
//	2. Apply command-line overrides and re-validate
//	3. Initialize logging and OpenTelemetry
//	4. Build the reader, pipeline and report writers
//
// # Usage
//
//	application, err := app.NewApplication(ctx, app.Settings{ConfigFile: path})
//	if err != nil {
//	    return err
//	}
//	defer application.Shutdown(ctx)
//	err = application.Run(ctx, "session_counts.csv", "adds_to_cart.csv")
//
// # Error Handling
//
// Errors are returned to the caller; the app never calls os.Exit, leaving
// exit codes to the command.
package app
