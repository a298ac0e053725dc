// Package factory is a small generic registry used to build pluggable modules,
// such as dataset sources and metric sinks, from configuration. A module is
// described by a type name and a map of raw settings; the registered factory
// decodes the settings into its own typed struct.
//
//	reg := factory.NewRegistry[dataset.Source]()
//	_ = reg.Register("csv", func(conf map[string]any) (dataset.Source, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return NewCSVSource(c.Path), nil
//	})
//	src, err := reg.Create(factory.ModuleConfig{Type: "csv", Conf: map[string]any{"path": "cars.csv"}})
package factory
