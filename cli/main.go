package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"go.dedis.ch/epfer/account"
	"go.dedis.ch/epfer/contract"
	"go.dedis.ch/epfer/contract/calldata"
	"go.dedis.ch/epfer/examples/adder"
	"go.dedis.ch/epfer/examples/counter"
	"go.dedis.ch/epfer/examples/empty"
	"go.dedis.ch/epfer/logging"
	"go.dedis.ch/epfer/runtime"
	"go.dedis.ch/epfer/storage"
	"go.dedis.ch/epfer/wallet"
)

// registry of deployable implementations
var implementations = map[string]func() contract.Contract{
	"adder":   adder.New,
	"counter": counter.New,
	"empty":   empty.New,
}

func main() {
	app := &cli.App{
		Name:  "epfer",
		Usage: "local contract sandbox",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "storage",
				Value: "simple",
				Usage: "contract storage backend: simple or leveldb",
			},
			&cli.StringFlag{
				Name:  "dir",
				Value: ".epfer",
				Usage: "data directory for the leveldb backend",
			},
			&cli.StringFlag{
				Name:  "verbosity",
				Value: "info",
				Usage: "log level: debug, info, warn or error",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level, err := zerolog.ParseLevel(c.String("verbosity"))
	if err != nil {
		return fmt.Errorf("parse verbosity: %w", err)
	}
	logging.SetLevel(level)

	kvFactory, err := buildKVFactory(c.String("storage"), c.String("dir"))
	if err != nil {
		return err
	}

	sb := runtime.NewSandbox(runtime.SandboxConf{KVFactory: kvFactory, Name: "repl"})
	w, err := wallet.NewWallet()
	if err != nil {
		return fmt.Errorf("create wallet: %w", err)
	}
	if err := sb.CreateAccount(w.Address(), 1000); err != nil {
		return err
	}
	fmt.Printf("wallet account: %s\n", w.Address())

	return repl(sb, w)
}

func buildKVFactory(backend, dir string) (storage.KVFactory, error) {
	switch backend {
	case "simple":
		return storage.CreateSimpleKV, nil
	case "leveldb":
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		n := 0
		return func() storage.KV {
			path := filepath.Join(dir, fmt.Sprintf("contract-%d", n))
			n++
			return storage.MustOpenLevelKV(path)
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

func repl(sb *runtime.Sandbox, w *wallet.Wallet) error {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("epfer> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil // EOF ends the session
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		params := strings.SplitN(line, " ", 3)
		action := params[0]
		switch action {
		case "exit", "quit":
			return nil
		case "help":
			printHelp()
		case "state":
			fmt.Println(sb.DumpState())
		case "receipts":
			for _, receipt := range sb.Receipts() {
				fmt.Println(receipt)
			}
		case "deploy":
			if len(params) < 2 {
				fmt.Println("usage: deploy <name>(<args>)")
				continue
			}
			doDeploy(sb, w, strings.Join(params[1:], " "))
		case "call":
			if len(params) < 3 {
				fmt.Println("usage: call <addr> <calldata>")
				continue
			}
			doCall(sb, w, params[1], params[2])
		case "query":
			if len(params) < 3 {
				fmt.Println("usage: query <addr> <calldata>")
				continue
			}
			doQuery(sb, params[1], params[2])
		case "upgrade":
			if len(params) < 3 {
				fmt.Println("usage: upgrade <addr> <name>")
				continue
			}
			doUpgrade(sb, w, params[1], params[2])
		default:
			fmt.Println("unsupported action, try help")
		}
	}
}

func printHelp() {
	fmt.Println("deploy <name>(<args>)   deploy an example contract, e.g. deploy adder(100)")
	fmt.Println("call <addr> <calldata>  invoke an endpoint, e.g. call <addr> add(5)")
	fmt.Println("query <addr> <calldata> invoke a view, e.g. query <addr> getSum()")
	fmt.Println("upgrade <addr> <name>   swap the implementation behind an address")
	fmt.Println("state                   dump the world state")
	fmt.Println("receipts                list call receipts")
	fmt.Println("exit                    leave")
}

func doDeploy(sb *runtime.Sandbox, w *wallet.Wallet, plain string) {
	call, err := calldata.Parse(plain)
	if err != nil {
		fmt.Printf("parse error: %v\n", err)
		return
	}
	newImpl, ok := implementations[call.Endpoint]
	if !ok {
		fmt.Printf("unknown contract: %s\n", call.Endpoint)
		return
	}
	addr, err := sb.Deploy(newImpl(), w.Address(), call.Args())
	if err != nil {
		fmt.Printf("deploy error: %v\n", err)
		return
	}
	fmt.Printf("deployed %s at %s\n", call.Endpoint, addr)
}

func doCall(sb *runtime.Sandbox, w *wallet.Wallet, addrHex, plain string) {
	addr, err := account.NewAddressFromHex(addrHex)
	if err != nil {
		fmt.Printf("bad address: %v\n", err)
		return
	}
	nonce, err := sb.Nonce(w.Address())
	if err != nil {
		fmt.Printf("nonce error: %v\n", err)
		return
	}
	req, err := w.NewCall(*addr, plain, nonce)
	if err != nil {
		fmt.Printf("sign error: %v\n", err)
		return
	}
	receipt, err := sb.Call(*req)
	if err != nil {
		fmt.Printf("call error: %v\n", err)
		return
	}
	fmt.Println(receipt)
}

func doQuery(sb *runtime.Sandbox, addrHex, plain string) {
	addr, err := account.NewAddressFromHex(addrHex)
	if err != nil {
		fmt.Printf("bad address: %v\n", err)
		return
	}
	result, err := sb.Query(*addr, plain)
	if err != nil {
		fmt.Printf("query error: %v\n", err)
		return
	}
	if result.IsVoid() {
		fmt.Println("<void>")
		return
	}
	fmt.Println(result)
}

func doUpgrade(sb *runtime.Sandbox, w *wallet.Wallet, addrHex, name string) {
	addr, err := account.NewAddressFromHex(addrHex)
	if err != nil {
		fmt.Printf("bad address: %v\n", err)
		return
	}
	newImpl, ok := implementations[name]
	if !ok {
		fmt.Printf("unknown contract: %s\n", name)
		return
	}
	if err := sb.Upgrade(*addr, newImpl(), w.Address(), contract.NewArgs()); err != nil {
		fmt.Printf("upgrade error: %v\n", err)
		return
	}
	fmt.Printf("upgraded %s to %s\n", addr.Short(), name)
}
