package main

import (
	"encoding/json"
	"errors"
	"fmt"

	core "compass.dev/compass-job/core"
)

type MachineCommand struct {
	Help    bool                  `short:"h" long:"help" description:"Show this help message"`
	Add     MachineAddCommand     `command:"add"`
	List    MachineListCommand    `command:"list"`
	Show    MachineShowCommand    `command:"show"`
	Default MachineDefaultCommand `command:"default"`
}

type MachineAddCommand struct {
	Account     string `short:"A" long:"account" description:"Default charge account"`
	Partition   string `short:"p" long:"partition" description:"Default partition"`
	QOS         string `short:"q" long:"qos" description:"Default quality of service"`
	Constraint  string `short:"C" long:"constraint" description:"Default node feature constraint"`
	Reservation string `long:"reservation" description:"Default reservation"`
	WallTime    string `short:"t" long:"time" description:"Default wall time limit"`
	Nodes       int    `short:"N" long:"nodes" description:"Default node count"`
	Args        struct {
		Name string `positional-arg-name:"machine" description:"machine name"`
	} `positional-args:"true" required:"1"`
}

type MachineListCommand struct{}

type MachineShowCommand struct {
	Args struct {
		Name string `positional-arg-name:"machine" description:"machine name"`
	} `positional-args:"true" required:"1"`
}

type MachineDefaultCommand struct {
	Args struct {
		Name string `positional-arg-name:"machine" description:"machine name"`
	} `positional-args:"true" required:"1"`
}

var machineCommand MachineCommand

func (x *MachineCommand) Execute(args []string) error {
	if x.Help {
		return createHelpErr()
	}
	return nil
}

func (x *MachineAddCommand) Execute(args []string) error {
	config := make(core.Config)
	config, _ = core.ReadConfig()
	config[x.Args.Name] = core.MachineProfile{
		Account:     x.Account,
		Partition:   x.Partition,
		QOS:         x.QOS,
		Constraint:  x.Constraint,
		Reservation: x.Reservation,
		WallTime:    x.WallTime,
		Nodes:       x.Nodes,
	}
	if err := core.WriteConfig(config); err != nil {
		return errors.New("machine add: unable to write config file")
	}
	// First machine becomes the target
	if len(core.ReadConfigTarget()) == 0 {
		return core.WriteConfigTarget(x.Args.Name)
	}
	return nil
}

func (x *MachineListCommand) Execute(args []string) error {
	config, err := core.ReadConfig()
	if err != nil {
		return errors.New("machine list: config not found. Try machine add first")
	}
	target := core.ReadConfigTarget()
	for name := range config {
		if name == target {
			fmt.Println(name + " (default)")
		} else {
			fmt.Println(name)
		}
	}
	return nil
}

func (x *MachineShowCommand) Execute(args []string) error {
	config, err := core.ReadConfig()
	if err != nil {
		return errors.New("machine show: config not found. Try machine add first")
	}
	machine, ok := config[x.Args.Name]
	if !ok {
		return errors.New(x.Args.Name + " configuration does not exist")
	}
	data, _ := json.MarshalIndent(machine, "", "	")
	fmt.Println(string(data))
	return nil
}

func (x *MachineDefaultCommand) Execute(args []string) error {
	config, err := core.ReadConfig()
	if err != nil {
		return errors.New("machine default: config not found. Try machine add first")
	}
	if _, ok := config[x.Args.Name]; !ok {
		return errors.New(x.Args.Name + " configuration does not exist")
	}
	return core.WriteConfigTarget(x.Args.Name)
}

func init() {
	parser.AddCommand("machine",
		"Manage machine profiles",
		"The machine command manages the per-machine submission defaults used by render and submit",
		&machineCommand)
}
