// Package config provides configuration parsing for the vango-lite CLI.
//
// The configuration is stored in vango-lite.json in the working directory.
// Every field is optional; missing fields take the defaults from New.
//
// # Configuration File Structure
//
//	{
//	  "log": {
//	    "level": "debug",
//	    "format": "json"
//	  },
//	  "render": {
//	    "eventPrefix": "on"
//	  },
//	  "serve": {
//	    "host": "0.0.0.0",
//	    "port": 8080,
//	    "readTimeout": "5s",
//	    "writeTimeout": "10s"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics",
//	    "namespace": "vango_lite"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.LoadOptional(".")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	logger := cfg.NewLogger(os.Stderr)
package config
