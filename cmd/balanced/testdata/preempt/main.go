package main

func preemptDisable() {}
func preemptEnable()  {}

func critical(n int) {
	for i := 0; i < n; i++ {
		preemptDisable()
	}
	preemptEnable()
}

func main() {
	critical(3)
}
